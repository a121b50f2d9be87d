package machine

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gmofishsauce/wut4so/internal/kernel"
)

// Program file format (all fields little-endian), a boot-image header
// pared down to a single in-memory segment since wut4so has no code/data
// split and no SD card to stage through:
//
//	offset 0: uint16 magic = 0xD10A
//	offset 2: uint16 loadAddress
//	offset 4: uint16 wordCount
//	offset 6: wordCount * 2 bytes, one little-endian uint16 per word
const (
	programMagic = 0xD10A
	headerSize   = 6
)

// FileLoader implements kernel.ProgramLoader by reading compiled wut4so
// programs out of a directory on disk.
type FileLoader struct {
	Dir string
}

func (l FileLoader) Load(mem kernel.Memory, name string) (int, error) {
	data, err := os.ReadFile(filepath.Join(l.Dir, name))
	if err != nil {
		return -1, err
	}
	if len(data) < headerSize {
		return -1, fmt.Errorf("machine: %s is too small to be a program (%d bytes)", name, len(data))
	}
	magic := binary.LittleEndian.Uint16(data[0:2])
	if magic != programMagic {
		return -1, fmt.Errorf("machine: %s has bad magic 0x%04X, want 0x%04X", name, magic, programMagic)
	}
	loadAddr := int(binary.LittleEndian.Uint16(data[2:4]))
	wordCount := int(binary.LittleEndian.Uint16(data[4:6]))

	need := headerSize + wordCount*2
	if len(data) < need {
		return -1, fmt.Errorf("machine: %s declares %d words but is only %d bytes", name, wordCount, len(data))
	}

	for i := 0; i < wordCount; i++ {
		word := int(binary.LittleEndian.Uint16(data[headerSize+2*i : headerSize+2*i+2]))
		if err := mem.WriteWord(loadAddr+i, word); err != nil {
			return -1, fmt.Errorf("machine: loading %s at %d: %w", name, loadAddr+i, err)
		}
	}
	return loadAddr, nil
}

// EncodeProgram is the inverse of the format Load reads, used by tests
// to synthesize fixture program bytes, which they write to a temporary
// directory for Load to read back.
func EncodeProgram(loadAddr int, words []int) []byte {
	out := make([]byte, headerSize+len(words)*2)
	binary.LittleEndian.PutUint16(out[0:2], programMagic)
	binary.LittleEndian.PutUint16(out[2:4], uint16(loadAddr))
	binary.LittleEndian.PutUint16(out[4:6], uint16(len(words)))
	for i, w := range words {
		binary.LittleEndian.PutUint16(out[headerSize+2*i:headerSize+2*i+2], uint16(w))
	}
	return out
}
