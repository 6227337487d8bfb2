// Package whatlang identifies the language of extracted text.
package whatlang

import (
	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/fwojciec/harvest"
)

var _ harvest.LanguageDetector = (*Detector)(nil)

// codes maps detectable languages to ISO 639-1 codes. Languages outside the
// table are reported as undetermined.
var codes = map[whatlanggo.Lang]string{
	whatlanggo.Ind: "id",
	whatlanggo.Jav: "jv",
	whatlanggo.Eng: "en",
	whatlanggo.Fra: "fr",
	whatlanggo.Deu: "de",
	whatlanggo.Spa: "es",
	whatlanggo.Por: "pt",
	whatlanggo.Ita: "it",
	whatlanggo.Nld: "nl",
	whatlanggo.Rus: "ru",
	whatlanggo.Cmn: "zh",
	whatlanggo.Jpn: "ja",
	whatlanggo.Kor: "ko",
	whatlanggo.Tha: "th",
	whatlanggo.Vie: "vi",
	whatlanggo.Tgl: "tl",
}

// Detector detects languages with trigram statistics.
type Detector struct {
	// MinLength is the number of bytes below which text is undetermined.
	MinLength int
}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{MinLength: 20}
}

// Detect returns the ISO 639-1 code of the text's language, or an empty
// string if the text is too short or the language is not recognized.
func (d *Detector) Detect(text string) string {
	if len(text) < d.MinLength {
		return ""
	}
	return codes[whatlanggo.DetectLang(text)]
}
