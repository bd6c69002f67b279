package sshkey

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	_ "gitlab.com/yawning/tomkit.git/ciphers/aes"
)

func sshString(b []byte) []byte {
	var out bytes.Buffer
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	out.Write(lenBuf[:])
	out.Write(b)
	return out.Bytes()
}

func sshUint32(v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b[:]
}

// buildUnencryptedEd25519Blob constructs a "none" cipher / "none" kdf
// openssh-key-v1 blob carrying one ssh-ed25519 key, matching the shape
// `ssh-keygen -t ed25519 -N ""` produces.
func buildUnencryptedEd25519Blob(t *testing.T, pub, priv []byte, comment string) []byte {
	t.Helper()
	require.Len(t, pub, 32)
	require.Len(t, priv, 64)

	pubkeyBlob := append(sshString([]byte("ssh-ed25519")), sshString(pub)...)

	var priv1 bytes.Buffer
	priv1.Write(sshUint32(0x2a2a2a2a))
	priv1.Write(sshUint32(0x2a2a2a2a))
	priv1.Write(sshString([]byte("ssh-ed25519")))
	priv1.Write(sshString(pub))
	priv1.Write(sshString(priv))
	priv1.Write(sshString([]byte(comment)))
	for i := 1; priv1.Len()%8 != 0; i++ {
		priv1.WriteByte(byte(i))
	}

	var out bytes.Buffer
	out.WriteString(magic)
	out.Write(sshString([]byte("none")))
	out.Write(sshString([]byte("none")))
	out.Write(sshString(nil))
	out.Write(sshUint32(1))
	out.Write(sshString(pubkeyBlob))
	out.Write(sshString(priv1.Bytes()))
	return out.Bytes()
}

func TestDecodeUnencryptedEd25519(t *testing.T) {
	pub := bytes.Repeat([]byte{0x11}, 32)
	priv := bytes.Repeat([]byte{0x22}, 64)

	blob := buildUnencryptedEd25519Blob(t, pub, priv, "user@host")

	sec, err := Decode(blob, nil)
	require.NoError(t, err)
	require.Equal(t, "ssh-ed25519", sec.Algo)
	require.Equal(t, "user@host", sec.Comment)
	require.Len(t, sec.Fields, 2)
	require.Equal(t, pub, sec.Fields[0])
	require.Equal(t, priv, sec.Fields[1])
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := Decode([]byte("not-openssh-key-v1"), nil)
	require.Error(t, err)
}
