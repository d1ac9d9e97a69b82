// Package ocr extracts an amount suggestion from uploaded payment proofs.
// The result is advisory: callers surface it next to the recorded value and
// never write it into the ledger.
package ocr

import (
	"errors"
	"fmt"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// ErrNoAmount reports that OCR ran but no plausible amount was found.
var ErrNoAmount = errors.New("no amount found")

// SuggestAmount runs light preprocessing + Tesseract over the image at path
// and returns the best amount candidate along with the raw matched token.
func SuggestAmount(path string) (float64, string, error) {
	prepped, err := preprocess(path)
	if err != nil {
		return 0, "", fmt.Errorf("preprocess: %w", err)
	}
	defer os.Remove(prepped)

	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetImage(prepped); err != nil {
		return 0, "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return 0, "", fmt.Errorf("ocr: %w", err)
	}
	amount, raw, ok := BestAmount(text)
	if !ok {
		return 0, "", ErrNoAmount
	}
	return amount, raw, nil
}
