package http11

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/valyala/fasthttp"
)

// Comparison benchmarks: ripple vs fasthttp
//
// Run with: go test -bench=BenchmarkParse -benchmem

var (
	benchSimpleGET = []byte("GET /index.html HTTP/1.1\r\n" +
		"Host: localhost:4221\r\n" +
		"User-Agent: curl/7.64.1\r\n" +
		"\r\n")

	benchPOST = []byte("POST /files/readme HTTP/1.1\r\n" +
		"Host: localhost:4221\r\n" +
		"Content-Type: application/octet-stream\r\n" +
		"Content-Length: 27\r\n" +
		"\r\n" +
		`{"name":"Alice","age":30}` + "\r\n")

	benchManyHeaders = []byte("GET /echo/abc HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"User-Agent: Mozilla/5.0\r\n" +
		"Accept: application/json\r\n" +
		"Accept-Encoding: gzip, deflate\r\n" +
		"Accept-Language: en-US,en;q=0.9\r\n" +
		"Cache-Control: no-cache\r\n" +
		"Connection: close\r\n" +
		"Cookie: session=abc123\r\n" +
		"Referer: https://example.com\r\n" +
		"Authorization: Bearer token123\r\n" +
		"\r\n")
)

func benchmarkRipple(b *testing.B, input []byte) {
	b.ReportAllocs()
	b.SetBytes(int64(len(input)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(input); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkFasthttp(b *testing.B, input []byte) {
	b.ReportAllocs()
	b.SetBytes(int64(len(input)))

	r := bytes.NewReader(input)
	br := bufio.NewReader(r)
	var req fasthttp.Request

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Reset(input)
		br.Reset(r)
		req.Reset()
		if err := req.Read(br); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseSimpleGET_Ripple(b *testing.B)   { benchmarkRipple(b, benchSimpleGET) }
func BenchmarkParseSimpleGET_Fasthttp(b *testing.B) { benchmarkFasthttp(b, benchSimpleGET) }

func BenchmarkParsePOST_Ripple(b *testing.B)   { benchmarkRipple(b, benchPOST) }
func BenchmarkParsePOST_Fasthttp(b *testing.B) { benchmarkFasthttp(b, benchPOST) }

func BenchmarkParseManyHeaders_Ripple(b *testing.B)   { benchmarkRipple(b, benchManyHeaders) }
func BenchmarkParseManyHeaders_Fasthttp(b *testing.B) { benchmarkFasthttp(b, benchManyHeaders) }

func BenchmarkParseMethodExtension(b *testing.B) {
	token := []byte("PROPFIND")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ParseMethod(token); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseIncomplete(b *testing.B) {
	input := benchManyHeaders[:len(benchManyHeaders)-2]
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(input); err != ErrIncomplete {
			b.Fatal(err)
		}
	}
}
