package engine

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-phonebook/internal/book"
	"github.com/tartampluch/go-phonebook/internal/config"
)

// ErrPersistence marks every snapshot read or write failure.
// A missing snapshot file is not one of them.
var ErrPersistence = errors.New(config.ErrPersistence)

// EncodeSnapshot writes dir as a snapshot: a header line carrying the format
// version and the SHA-256 of the body, followed by one vCard per record.
func EncodeSnapshot(w io.Writer, dir *book.Directory) error {
	var body bytes.Buffer
	if _, err := WriteVCards(&body, dir); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	sum := sha256.Sum256(body.Bytes())
	header := fmt.Sprintf(config.FormatSnapshotHeader, config.SnapshotMagic, config.SnapshotVersion, hex.EncodeToString(sum[:]))
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPersistence, config.ErrSnapshotWrite, err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPersistence, config.ErrSnapshotWrite, err)
	}
	return nil
}

// DecodeSnapshot restores a directory written by EncodeSnapshot.
// Any structural problem, checksum mismatch or invalid contact fails with ErrPersistence.
func DecodeSnapshot(r io.Reader) (*book.Directory, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPersistence, config.ErrSnapshotHeader)
	}

	// Header: magic, format version, checksum of everything after the header line.
	fields := strings.Fields(line)
	if len(fields) != config.SnapshotHeaderFields {
		return nil, fmt.Errorf("%w: %s", ErrPersistence, config.ErrSnapshotHeader)
	}
	if fields[0] != config.SnapshotMagic {
		return nil, fmt.Errorf("%w: %s", ErrPersistence, config.ErrSnapshotMagic)
	}
	if fields[1] != config.SnapshotVersion {
		return nil, fmt.Errorf("%w: %s: %q", ErrPersistence, config.ErrSnapshotVersion, fields[1])
	}

	body, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPersistence, config.ErrSnapshotRead, err)
	}
	sum := sha256.Sum256(body)
	if hex.EncodeToString(sum[:]) != fields[2] {
		return nil, fmt.Errorf("%w: %s", ErrPersistence, config.ErrSnapshotChecksum)
	}

	dir := book.NewDirectory()
	decoder := vcard.NewDecoder(bytes.NewReader(body))
	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrPersistence, config.ErrVCardParse, err)
		}

		// Strict mode: a snapshot we wrote never holds an invalid value.
		record, err := cardToRecord(card, true)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrPersistence, config.ErrSnapshotCard, err)
		}
		if _, dup := dir.Find(record.Name()); dup {
			return nil, fmt.Errorf("%w: %s: %q", ErrPersistence, config.ErrSnapshotDupName, record.Name())
		}
		dir.Add(record)
	}
	return dir, nil
}

// LoadFile reads the snapshot at path. A missing file yields an empty directory
// and no error; every other failure is an ErrPersistence.
func LoadFile(path string) (*book.Directory, error) {
	log := slog.With(
		config.LogKeyComponent, config.CompSnapshot,
		config.LogKeyFile, path,
	)

	// First run: no snapshot yet.
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info(config.MsgSnapshotFresh)
		return book.NewDirectory(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPersistence, config.ErrSnapshotRead, err)
	}
	defer func() { _ = f.Close() }()

	dir, err := DecodeSnapshot(f)
	if err != nil {
		return nil, err
	}
	log.Info(config.MsgSnapshotLoaded, config.LogKeyCount, dir.Len())
	return dir, nil
}

// SaveFile writes dir to path atomically: the snapshot is fully written to a
// temporary file next to path, then renamed over it.
func SaveFile(path string, dir *book.Directory) error {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, dir); err != nil {
		return err
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPersistence, config.ErrSnapshotWrite, err)
	}

	slog.Info(config.MsgSnapshotSaved,
		config.LogKeyComponent, config.CompSnapshot,
		config.LogKeyFile, path,
		config.LogKeyCount, dir.Len(),
		config.LogKeySizeBytes, buf.Len(),
	)
	return nil
}
