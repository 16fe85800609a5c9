package models

// LocalizedText is a caller-facing message carried in both supported UI languages.
type LocalizedText struct {
	EN string `json:"en"`
	TR string `json:"tr"`
}

// Text builds a LocalizedText pair.
func Text(en, tr string) LocalizedText {
	return LocalizedText{EN: en, TR: tr}
}

// Complete reports whether both halves are present.
func (t LocalizedText) Complete() bool {
	return t.EN != "" && t.TR != ""
}
