package corefmt

import (
	"bytes"
	"testing"

	"github.com/zintix-labs/distlab/errs"
	"github.com/zintix-labs/distlab/sdk/core"
)

func TestBase64RoundTrip(t *testing.T) {
	raw := []byte{0, 1, 2, 0xfe, 0xff}
	for _, tc := range []struct {
		enc func([]byte) string
		dec func(string) ([]byte, error)
	}{
		{EncodeBase64, DecodeBase64},
		{EncodeBase64URL, DecodeBase64URL},
		{EncodeHex, DecodeHex},
	} {
		got, err := tc.dec(tc.enc(raw))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, raw) {
			t.Fatalf("round trip mismatch: %v != %v", got, raw)
		}
	}

	if _, err := DecodeBase64("!!!"); err == nil {
		t.Fatal("invalid base64 accepted")
	}
}

func TestBlobFrameRoundTrip(t *testing.T) {
	payload := []byte("snapshot-payload")
	frame := EncodeBlobFrame(payload)
	got, err := DecodeBlobFrame(frame)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: %q", got)
	}

	// 截斷的 frame 要報錯，不能 panic
	if _, err := DecodeBlobFrame(frame[:len(frame)-3]); errs.KindOf(err) != errs.KindDegenerate {
		t.Fatalf("truncated frame: expected degenerate, got %v", err)
	}
}

func TestWriteReadBlobFrame(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte{9, 8, 7}
	if err := WriteBlobFrame(&buf, payload); err != nil {
		t.Fatal(err)
	}
	got, err := ReadBlobFrame(&buf, 1<<10)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: %v", got)
	}

	var big bytes.Buffer
	if err := WriteBlobFrame(&big, make([]byte, 64)); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadBlobFrame(&big, 8); err == nil {
		t.Fatal("payload above maxBytes accepted")
	}
}

func TestSnapshotTransport(t *testing.T) {
	c1 := core.New(core.Default().New(77))
	_ = c1.Uint64()
	snap, err := c1.Snapshot()
	if err != nil {
		t.Fatal(err)
	}

	// base64 去、base64 回，還原後序列要一致
	restored, err := DecodeBase64(EncodeBase64(snap))
	if err != nil {
		t.Fatal(err)
	}
	c2 := core.New(core.Default().New(0))
	if err := c2.Restore(restored); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		if c1.Uint64() != c2.Uint64() {
			t.Fatalf("restored stream diverged at %d", i)
		}
	}
}
