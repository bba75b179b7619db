package textanalysis

// stopWords is the closed set of Spanish function words dropped before counting.
var stopWords = map[string]struct{}{
	"el": {}, "la": {}, "de": {}, "que": {}, "y": {}, "a": {}, "en": {}, "un": {},
	"ser": {}, "se": {}, "no": {}, "haber": {}, "por": {}, "con": {}, "su": {},
	"para": {}, "como": {}, "estar": {}, "tener": {}, "le": {}, "lo": {}, "todo": {},
	"pero": {}, "más": {}, "hacer": {}, "o": {}, "poder": {}, "decir": {}, "este": {},
	"ir": {}, "otro": {}, "ese": {}, "si": {}, "me": {}, "ya": {}, "ver": {},
	"porque": {}, "dar": {}, "cuando": {}, "él": {}, "muy": {}, "sin": {}, "vez": {},
	"mucho": {}, "saber": {}, "qué": {}, "sobre": {}, "mi": {}, "alguno": {},
	"mismo": {}, "yo": {}, "también": {}, "hasta": {}, "año": {}, "dos": {},
	"querer": {}, "entre": {}, "así": {}, "primero": {}, "desde": {}, "grande": {},
	"eso": {}, "ni": {}, "nos": {}, "llegar": {}, "pasar": {}, "tiempo": {},
	"ella": {}, "una": {}, "las": {}, "los": {}, "del": {}, "al": {}, "es": {},
	"son": {}, "fue": {}, "han": {}, "era": {}, "está": {}, "están": {},
	"fueron": {}, "sido": {}, "tiene": {}, "tienen": {}, "había": {}, "hay": {},
	"puede": {}, "pueden": {}, "esta": {}, "estos": {}, "estas": {}, "esos": {},
	"esas": {}, "esa": {}, "mas": {}, "aunque": {}, "solo": {}, "sólo": {}, "etc": {},
}

// IsStopWord reports whether word belongs to the stop-word set, ignoring case.
func IsStopWord(word string) bool {
	_, ok := stopWords[lower(word)]
	return ok
}

// FilterStopWords keeps tokens longer than MinWordLength characters that are not
// stop words. Short tokens go regardless of meaning ("ok", "mal").
func FilterStopWords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if runeLen(tok) <= MinWordLength || IsStopWord(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}
