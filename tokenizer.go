package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Tokenizer is an interface for different tokenizer implementations.
type Tokenizer interface {
	CountTokens(text string) int
	Close()
}

// --- Tiktoken Wrapper ---

type TiktokenWrapper struct {
	ttk *tiktoken.Tiktoken
}

func (w *TiktokenWrapper) CountTokens(text string) int {
	if w.ttk == nil {
		return 0
	}
	return len(w.ttk.EncodeOrdinary(text))
}

func (w *TiktokenWrapper) Close() {
	// No explicit close needed for tiktoken-go
}

// --- HuggingFace (sugarme) Wrapper ---

type HFTokenizerWrapper struct {
	htk *hf.Tokenizer
}

func (w *HFTokenizerWrapper) CountTokens(text string) int {
	if w.htk == nil {
		return 0
	}
	en, err := w.htk.EncodeSingle(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: HF tokenizer failed to encode text: %v\n", err)
		return 0
	}
	return len(en.Tokens)
}

func (w *HFTokenizerWrapper) Close() {
	// sugarme/tokenizer has no explicit Close/Free method
}

// --- Tokenizer Loading Logic ---

const defaultTiktokenModel = "gpt-4o"
const defaultHFModel = "gpt2"

// getTokenizer returns a tokenizer instance based on flags.
func getTokenizer() (Tokenizer, error) {
	switch strings.ToLower(tokenizerType) {
	case "tiktoken":
		return loadTiktoken()
	case "huggingface":
		return loadHuggingFace()
	default:
		return nil, fmt.Errorf("unsupported tokenizer type: %s. Use 'tiktoken' or 'huggingface'", tokenizerType)
	}
}

func loadTiktoken() (Tokenizer, error) {
	model := tokenizerModel
	if model == "" {
		model = defaultTiktokenModel
	}

	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Tiktoken model '%s' not found, falling back to '%s': %v\n", model, defaultTiktokenModel, err)
		tke, err = tiktoken.EncodingForModel(defaultTiktokenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for default model '%s': %w", defaultTiktokenModel, err)
		}
	}
	return &TiktokenWrapper{ttk: tke}, nil
}

func loadHuggingFace() (Tokenizer, error) {
	if tokenizerFile != "" {
		ttk, err := pretrained.FromFile(tokenizerFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer from file %s: %w", tokenizerFile, err)
		}
		return &HFTokenizerWrapper{htk: ttk}, nil
	}

	model := tokenizerModel
	if model == "" {
		model = defaultHFModel
	}
	fmt.Printf("Loading HuggingFace tokenizer for model: %s (this may download files)\n", model)

	// sugarme/tokenizer uses CachedPath to download/find the tokenizer.json
	configFilePath, err := hf.CachedPath(model, "tokenizer.json")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache path for model %s: %w", model, err)
	}
	ttk, err := pretrained.FromFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pretrained tokenizer for model %s (from %s): %w", model, configFilePath, err)
	}
	return &HFTokenizerWrapper{htk: ttk}, nil
}

// --- Token Counting Over Outcomes ---

// countEmbeddedTokens sums token counts over every file whose content was
// embedded in the formatted document. Counting happens after the pipeline
// returns, fanned out over a worker pool; the transformation itself stays
// single-threaded.
func countEmbeddedTokens(tk Tokenizer, outcomes []FileOutcome, workers int) int {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan string, len(outcomes))
	results := make(chan int, len(outcomes))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for text := range jobs {
				results <- tk.CountTokens(text)
			}
		}()
	}

	for _, outcome := range outcomes {
		if outcome.State != Embedded {
			continue
		}
		jobs <- outcome.Content
	}
	close(jobs)
	wg.Wait()
	close(results)

	total := 0
	for count := range results {
		total += count
	}
	return total
}
