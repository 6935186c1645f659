package handler

import (
    "golang.org/x/text/cases"
)

// GenreChoices are the genres a venue or artist can be listed under.
var GenreChoices = []string{
    "Alternative", "Blues", "Classical", "Country", "Electronic", "Folk",
    "Funk", "Hip-Hop", "Heavy Metal", "Instrumental", "Jazz",
    "Musical Theatre", "Pop", "Punk", "R&B", "Reggae", "Rock n Roll",
    "Soul", "Other",
}

// StateChoices are the US state codes accepted in addresses.
var StateChoices = []string{
    "AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI",
    "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MT", "NE", "NV", "NH",
    "NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "MD", "MA", "MI", "MN",
    "MS", "MO", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA",
    "WV", "WI", "WY",
}

// matchChoice returns the canonical spelling of v among choices, comparing
// case-folded.  A cases.Caser keeps state, so one is built per call.
func matchChoice(choices []string, v string) (string, bool) {
    fold := cases.Fold()
    want := fold.String(v)
    for _, c := range choices {
        if fold.String(c) == want {
            return c, true
        }
    }
    return "", false
}
