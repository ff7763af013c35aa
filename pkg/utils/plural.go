package utils

// PluralForms holds the three Russian grammatical-number forms of a
// counted noun: singular ("минута"), paucal ("минуты") and plural
// ("минут").
type PluralForms [3]string

// Plural selects the grammatically correct form for n following the
// standard Slavic pluralization rule.
func Plural(n int64, forms PluralForms) string {
	if n < 0 {
		n = -n
	}

	switch {
	case n%10 == 1 && n%100 != 11:
		return forms[0]
	case n%10 >= 2 && n%10 <= 4 && !(n%100 >= 10 && n%100 < 20):
		return forms[1]
	default:
		return forms[2]
	}
}
