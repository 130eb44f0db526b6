package pdf

import (
	"bytes"
	"image"
	"image/draw"
	"io"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ImageStatus tags the outcome of resolving a record's link field.
type ImageStatus int

const (
	// ImageNone means the record carries no link.
	ImageNone ImageStatus = iota
	// ImageOK means the image was fetched and decoded.
	ImageOK
	// ImageFetchFailed means the network retrieval failed or timed out.
	ImageFetchFailed
	// ImageDecodeFailed means the body was not a decodable image.
	ImageDecodeFailed
)

// ImageResult is the tagged fetch/decode outcome. It is produced once
// per record during height estimation and reused at draw time; the
// engine never re-fetches.
type ImageResult struct {
	Status ImageStatus
	Img    image.Image // opaque RGB, nil unless Status == ImageOK
	Width  int         // decoded pixel width
	Height int         // decoded pixel height
	Err    error       // underlying cause for the two failure states
}

// DefaultFetchTimeout bounds each image retrieval. Exports run inline
// in an interactive flow, so one slow host must not stall the document
// for more than this per record.
const DefaultFetchTimeout = 5 * time.Second

// ResolveLink rewrites Google Drive share links of the form
// .../file/d/{id}/... into the direct-content URL
// https://drive.google.com/uc?export=view&id={id}. Anything else passes
// through unchanged.
func ResolveLink(raw string) string {
	if !strings.Contains(raw, "drive.google.com") || !strings.Contains(raw, "/file/d/") {
		return raw
	}
	rest := raw[strings.Index(raw, "/file/d/")+len("/file/d/"):]
	id := rest
	if i := strings.Index(rest, "/"); i >= 0 {
		id = rest[:i]
	}
	if id == "" {
		return raw
	}
	return "https://drive.google.com/uc?export=view&id=" + id
}

// Fetcher retrieves and decodes record images. Best effort: a single
// attempt with a short timeout, no retries.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch resolves the raw link, retrieves the bytes, and decodes them
// into an opaque RGB raster. Failures are reported in the result tag,
// never returned as errors.
func (f *Fetcher) Fetch(rawURL string) ImageResult {
	if rawURL == "" {
		return ImageResult{Status: ImageNone}
	}
	resp, err := f.client.Get(ResolveLink(rawURL))
	if err != nil {
		return ImageResult{Status: ImageFetchFailed, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ImageResult{Status: ImageFetchFailed, Err: err}
	}

	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return ImageResult{Status: ImageDecodeFailed, Err: err}
	}
	flat := flatten(img)
	b := flat.Bounds()
	return ImageResult{Status: ImageOK, Img: flat, Width: b.Dx(), Height: b.Dy()}
}

// flatten composites the decoded image over a white background,
// discarding alpha so every embedded raster shares one color model.
func flatten(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}
