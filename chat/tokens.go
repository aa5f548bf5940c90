package chat

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

var (
	bpeOnce sync.Once
	bpeEnc  tokenizer.Codec
)

// encoder returns a singleton BPE encoder. The budget math only needs a
// consistent subword tokenizer, not the provider's exact one, so o200k_base
// with a cl100k_base fallback serves every backend.
func encoder() tokenizer.Codec {
	bpeOnce.Do(func() {
		var err error
		bpeEnc, err = tokenizer.Get(tokenizer.O200kBase)
		if err != nil {
			bpeEnc, err = tokenizer.Get(tokenizer.Cl100kBase)
			if err != nil {
				panic("failed to initialize tiktoken encoder: " + err.Error())
			}
		}
	})
	return bpeEnc
}

// CountTokens returns the number of BPE tokens in the given text.
func CountTokens(text string) int {
	ids, _, _ := encoder().Encode(text)
	return len(ids)
}
