package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestResolveLink(t *testing.T) {
	cases := []struct{ in, want string }{
		{
			"https://drive.google.com/file/d/ABC123/view?usp=sharing",
			"https://drive.google.com/uc?export=view&id=ABC123",
		},
		{
			"https://drive.google.com/file/d/xyz_0-9/preview",
			"https://drive.google.com/uc?export=view&id=xyz_0-9",
		},
		// no trailing slash after the id segment
		{
			"https://drive.google.com/file/d/ONLYID",
			"https://drive.google.com/uc?export=view&id=ONLYID",
		},
		{"https://example.com/img.png", "https://example.com/img.png"},
		{"https://drive.google.com/open?id=ABC", "https://drive.google.com/open?id=ABC"},
		{"", ""},
	}
	for _, c := range cases {
		if got := ResolveLink(c.in); got != c.want {
			t.Errorf("ResolveLink(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 200})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFetchDecodesAndFlattens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngBytes(t, 12, 7))
	}))
	defer srv.Close()

	res := NewFetcher(time.Second).Fetch(srv.URL)
	if res.Status != ImageOK {
		t.Fatalf("status = %v, err = %v", res.Status, res.Err)
	}
	if res.Width != 12 || res.Height != 7 {
		t.Errorf("geometry = %dx%d, want 12x7", res.Width, res.Height)
	}
	// flattened result must be fully opaque
	_, _, _, a := res.Img.At(3, 3).RGBA()
	if a != 0xffff {
		t.Errorf("alpha = %#x, want opaque", a)
	}
}

func TestFetchFailureKinds(t *testing.T) {
	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not an image</html>"))
	}))
	defer garbage.Close()
	if res := NewFetcher(time.Second).Fetch(garbage.URL); res.Status != ImageDecodeFailed {
		t.Errorf("garbage body: status = %v, want ImageDecodeFailed", res.Status)
	}

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close() // connection refused
	if res := NewFetcher(time.Second).Fetch(dead.URL); res.Status != ImageFetchFailed {
		t.Errorf("dead server: status = %v, want ImageFetchFailed", res.Status)
	}

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer slow.Close()
	if res := NewFetcher(50 * time.Millisecond).Fetch(slow.URL); res.Status != ImageFetchFailed {
		t.Errorf("timeout: status = %v, want ImageFetchFailed", res.Status)
	}

	if res := NewFetcher(time.Second).Fetch(""); res.Status != ImageNone {
		t.Errorf("empty link: status = %v, want ImageNone", res.Status)
	}
}
