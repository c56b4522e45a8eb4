package sensor

import "testing"

func TestParseLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		value int
		kind  Kind
		ok    bool
	}{
		{"bare integer", "42\n", 42, KindRaw, true},
		{"bare integer crlf", "17\r\n", 17, KindRaw, true},
		{"negative", "-3\n", -3, KindRaw, true},
		{"padded", "  8  \n", 8, KindRaw, true},
		{"encoder", "ENC 5\n", 5, KindEncoder, true},
		{"encoder negative", "ENC -2\r\n", -2, KindEncoder, true},
		{"encoder double space", "ENC  5\n", 0, KindRaw, false},
		{"encoder missing value", "ENC\n", 0, KindRaw, false},
		{"encoder extra field", "ENC 5 6\n", 0, KindRaw, false},
		{"encoder glued", "ENC5\n", 0, KindRaw, false},
		{"encoder garbage", "ENC x\n", 0, KindRaw, false},
		{"wrong prefix", "POS 5\n", 0, KindRaw, false},
		{"empty", "\n", 0, KindRaw, false},
		{"float", "3.5\n", 0, KindRaw, false},
		{"boot banner", "ready\n", 0, KindRaw, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := ParseLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if !ok {
				return
			}
			if r.Value != tt.value || r.Kind != tt.kind {
				t.Errorf("ParseLine(%q) = %d/%v, want %d/%v", tt.line, r.Value, r.Kind, tt.value, tt.kind)
			}
		})
	}
}

func TestSlotLastWriteWins(t *testing.T) {
	var s Slot

	if _, ok := s.Load(); ok {
		t.Fatal("Expected empty slot")
	}

	s.Store(1, KindRaw)
	s.Store(2, KindRaw)
	s.Store(3, KindEncoder)

	r, ok := s.Load()
	if !ok {
		t.Fatal("Expected a reading")
	}
	if r.Value != 3 || r.Kind != KindEncoder {
		t.Errorf("Expected 3/encoder, got %d/%v", r.Value, r.Kind)
	}
	if r.Sequence != 3 {
		t.Errorf("Expected sequence 3, got %d", r.Sequence)
	}
}
