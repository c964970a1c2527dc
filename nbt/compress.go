package nbt

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

func compressionErr(err error) *Error {
	return &Error{Kind: ErrCompression, Offset: -1, Err: err}
}

// decompress unwraps the compression framing around an encoded tree.
func decompress(data []byte, c Compression) ([]byte, error) {
	var rc io.ReadCloser
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, compressionErr(err)
		}
		rc = gr
	case CompressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, compressionErr(err)
		}
		rc = zr
	case CompressionDeflate:
		rc = flate.NewReader(bytes.NewReader(data))
	default:
		return nil, errAt(ErrInvalidOption, -1, "compression %q", c)
	}
	defer rc.Close()
	out, err := io.ReadAll(rc)
	if err != nil {
		return nil, compressionErr(err)
	}
	return out, nil
}

// compress applies the compression framing to an encoded tree.
func compress(data []byte, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	var wc io.WriteCloser
	switch c {
	case CompressionNone, CompressionAuto:
		return data, nil
	case CompressionGzip:
		wc = gzip.NewWriter(&buf)
	case CompressionZlib:
		wc = zlib.NewWriter(&buf)
	case CompressionDeflate:
		fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
		if err != nil {
			return nil, compressionErr(err)
		}
		wc = fw
	default:
		return nil, errAt(ErrInvalidOption, -1, "compression %q", c)
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return nil, compressionErr(err)
	}
	if err := wc.Close(); err != nil {
		return nil, compressionErr(err)
	}
	return buf.Bytes(), nil
}
