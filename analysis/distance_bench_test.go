package analysis

import "testing"

func BenchmarkCompareFrames(b *testing.B) {
	ref := randomFrame(1024, 4, 1)
	cand := randomFrame(1024, 4, 2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CompareFrames(ref, cand)
	}
}

func BenchmarkSpectralRMSEDB(b *testing.B) {
	x := randomSignal(4096, 3)
	y := randomSignal(4096, 4)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = spectralRMSEDB(x, y)
	}
}
