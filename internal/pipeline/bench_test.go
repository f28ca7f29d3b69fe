package pipeline

import (
	"strings"
	"testing"
)

const benchMessage = "# Summary\n\nHere is **the fix** and a *note*:\n\n" +
	"```go\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n```\n\n" +
	"- first\n- second\n1. step\n\n" +
	"|a|b|\n|---|---|\n|1|2|\n\n" +
	"Use `go test ./...` to verify.\n"

func BenchmarkRun(b *testing.B) {
	p := New()
	for b.Loop() {
		p.Run(benchMessage)
	}
}

func BenchmarkRun_Legacy(b *testing.B) {
	p := New(WithLegacyScanning())
	for b.Loop() {
		p.Run(benchMessage)
	}
}

func BenchmarkRun_Large(b *testing.B) {
	large := strings.Repeat(benchMessage+"\n", 50)
	p := New()
	b.SetBytes(int64(len(large)))
	for b.Loop() {
		p.Run(large)
	}
}
