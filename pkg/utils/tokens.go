package utils

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var encoding = sync.OnceValues(func() (*tiktoken.Tiktoken, error) {
	return tiktoken.EncodingForModel("gpt-4o")
})

// NumTokensFromMessages estimates how many tokens text costs. Only used for logging.
func NumTokensFromMessages(text string) (int, error) {
	tkm, err := encoding()
	if err != nil {
		return 0, err
	}

	return len(tkm.Encode(text, nil, nil)), nil
}
