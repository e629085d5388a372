// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wordcloud

import "strings"

// englishStopwords is the usual English function-word list. Words shorter
// than three letters are filtered by length anyway and are omitted here.
const englishStopwords = `
about above after again against all also although always among and any are
aren't around because been before being below between both but can cannot
could couldn't did didn't does doesn't doing don't down during each either
else ever few for from further had hadn't has hasn't have haven't having her
here hers herself him himself his how however into isn't its itself just
less let's like made make many may more most much must mustn't myself neither
nor not now off once one only onto other ought our ours ourselves out over
own per same shall she should shouldn't since some such than that that's the
their theirs them themselves then there there's these they this those though
through thus too toward towards under until upon use used using very via was
wasn't way well were weren't what when where whether which while who whom
whose why will with within without won't would wouldn't yet you your yours
yourself yourselves
`

var stopwords = func() map[string]bool {
	m := make(map[string]bool)
	for _, w := range strings.Fields(englishStopwords) {
		m[w] = true
	}
	return m
}()
