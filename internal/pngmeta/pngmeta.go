package pngmeta

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrNotPNG is returned for files without a .png extension or PNG
	// signature.
	ErrNotPNG = errors.New("not a png file")
	// ErrNoParameters is returned when the file carries no "parameters"
	// text chunk.
	ErrNoParameters = errors.New("no parameters chunk")
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// parametersKeyword is the text chunk keyword generation tools write.
const parametersKeyword = "parameters"

// maxChunkSize caps how much of a single chunk is read into memory. Text
// chunks are tiny; anything larger is skipped.
const maxChunkSize = 1 << 24

// Parameters returns the raw "parameters" text embedded in the PNG at path.
func Parameters(path string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".png") {
		return "", ErrNotPNG
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open png: %w", err)
	}
	defer f.Close()
	return extract(f)
}

func extract(r io.Reader) (string, error) {
	signature := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(r, signature); err != nil {
		return "", ErrNotPNG
	}
	if !bytes.Equal(signature, pngSignature) {
		return "", ErrNotPNG
	}

	header := make([]byte, 8)
	for {
		if _, err := io.ReadFull(r, header); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return "", ErrNoParameters
			}
			return "", fmt.Errorf("read chunk header: %w", err)
		}
		length := binary.BigEndian.Uint32(header[:4])
		chunkType := string(header[4:8])

		if chunkType == "IEND" {
			return "", ErrNoParameters
		}

		isText := chunkType == "tEXt" || chunkType == "iTXt" || chunkType == "zTXt"
		if !isText || length > maxChunkSize {
			// Skip data plus the 4-byte CRC.
			if _, err := io.CopyN(io.Discard, r, int64(length)+4); err != nil {
				return "", fmt.Errorf("skip chunk %s: %w", chunkType, err)
			}
			continue
		}

		data := make([]byte, length)
		if _, err := io.ReadFull(r, data); err != nil {
			return "", fmt.Errorf("read chunk %s: %w", chunkType, err)
		}
		if _, err := io.CopyN(io.Discard, r, 4); err != nil {
			return "", fmt.Errorf("skip crc: %w", err)
		}

		keyword, text, err := decodeTextChunk(chunkType, data)
		if err != nil {
			return "", err
		}
		if keyword == parametersKeyword {
			return text, nil
		}
	}
}

func decodeTextChunk(chunkType string, data []byte) (keyword, text string, err error) {
	sep := bytes.IndexByte(data, 0)
	if sep < 0 {
		return "", "", fmt.Errorf("malformed %s chunk: missing keyword terminator", chunkType)
	}
	keyword = string(data[:sep])
	rest := data[sep+1:]

	switch chunkType {
	case "tEXt":
		return keyword, string(rest), nil

	case "zTXt":
		if len(rest) < 1 {
			return "", "", fmt.Errorf("malformed zTXt chunk")
		}
		inflated, err := inflate(rest[1:])
		if err != nil {
			return "", "", fmt.Errorf("inflate zTXt: %w", err)
		}
		return keyword, inflated, nil

	case "iTXt":
		// compression flag, compression method, language tag\0,
		// translated keyword\0, text.
		if len(rest) < 2 {
			return "", "", fmt.Errorf("malformed iTXt chunk")
		}
		compressed := rest[0] == 1
		rest = rest[2:]
		for i := 0; i < 2; i++ {
			sep := bytes.IndexByte(rest, 0)
			if sep < 0 {
				return "", "", fmt.Errorf("malformed iTXt chunk")
			}
			rest = rest[sep+1:]
		}
		if compressed {
			inflated, err := inflate(rest)
			if err != nil {
				return "", "", fmt.Errorf("inflate iTXt: %w", err)
			}
			return keyword, inflated, nil
		}
		return keyword, string(rest), nil
	}
	return "", "", fmt.Errorf("unexpected chunk type %s", chunkType)
}

func inflate(data []byte) (string, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
