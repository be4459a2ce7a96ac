package chunker

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minutia-lab/minutia/pkg/domain/model"
)

// Default window parameters, tuned for transcribed speech
const (
	DefaultChunkSize = 300
	DefaultOverlap   = 50
)

// Split divides transcript text into overlapping word-window chunks. Windows
// hold chunkSize words and advance by chunkSize-overlap words, so adjacent
// chunks repeat up to overlap words at each boundary. The final window may be
// shorter. Chunk indices are contiguous from 0 and word offsets refer to the
// whitespace-split word sequence of the input.
func Split(text string, chunkSize, overlap int) ([]model.Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "transcript text is empty, nothing to chunk")
	}
	if chunkSize < 1 {
		return nil, goerr.Wrap(model.ErrInvalidInput, "chunk size must be at least 1", goerr.V("chunk_size", chunkSize))
	}
	if overlap < 0 {
		return nil, goerr.Wrap(model.ErrInvalidInput, "overlap must be non-negative", goerr.V("overlap", overlap))
	}
	if overlap >= chunkSize {
		return nil, goerr.Wrap(model.ErrInvalidInput, "overlap must be smaller than chunk size",
			goerr.V("chunk_size", chunkSize), goerr.V("overlap", overlap))
	}

	words := strings.Fields(text)
	step := chunkSize - overlap

	var chunks []model.Chunk
	for start := 0; start < len(words); start += step {
		end := start + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, model.Chunk{
			Index:     len(chunks),
			Text:      strings.Join(words[start:end], " "),
			StartWord: start,
			EndWord:   end,
		})
	}

	return chunks, nil
}
