package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-phonebook/internal/book"
	"github.com/tartampluch/go-phonebook/internal/config"
)

// Importer reads contacts from a local .vcf file or a remote address book.
type Importer struct {
	Fetcher     VCardFetcher    // Used for http(s) sources.
	Credentials CredentialStore // Optional; looked up when a user is given.
}

// Import reads every card of source and returns the resulting records without
// touching any directory, so that a failed import changes nothing.
// Cards without a name, invalid phones and unusable birthdays are skipped.
func (im *Importer) Import(ctx context.Context, source, user string) ([]*book.Record, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompImporter,
		config.LogKeySource, redactSource(source),
	)
	log.InfoContext(ctx, config.MsgImportStarted)

	reader, err := im.acquireStream(ctx, source, user)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	records, stats, err := decodeCards(ctx, reader)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, config.MsgImportDone,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyImported, len(records)),
			slog.Int(config.LogKeySkipped, stats.skipped),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return records, nil
}

// acquireStream opens a local file or downloads a remote address book.
func (im *Importer) acquireStream(ctx context.Context, source, user string) (io.ReadCloser, error) {
	if source == "" {
		return nil, errors.New(config.ErrSourceEmpty)
	}
	if !isRemote(source) {
		return os.Open(source)
	}
	if im.Fetcher == nil {
		return nil, errors.New(config.ErrFetcherMissing)
	}

	req := FetchRequest{URL: source, User: user}
	if user != "" && im.Credentials != nil {
		pass, err := im.Credentials.Password(user)
		if err != nil {
			// An absent password is legitimate; the server decides.
			slog.Debug(config.ErrCredentials,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyError, err)
		}
		req.Password = pass
	}
	return im.Fetcher.Fetch(ctx, req)
}

type importStats struct {
	processed, skipped int
}

// decodeCards parses a vCard stream leniently. Records sharing a name are
// folded together in stream order. An empty source imports nothing, but a
// non-empty one without a single card is not an address book.
func decodeCards(ctx context.Context, r io.Reader) ([]*book.Record, importStats, error) {
	var stats importStats

	// Buffer the whole source: remote bodies are already capped by the fetcher.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}

	staged := book.NewDirectory()
	decoder := vcard.NewDecoder(bytes.NewReader(data))

	for {
		if ctx.Err() != nil {
			return nil, stats, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A malformed card cannot be resynchronized reliably; stop here
			// when nothing was read, otherwise keep what was decoded.
			if stats.processed == 0 {
				return nil, stats, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
			}
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyError, err)
			break
		}
		stats.processed++

		record, err := cardToRecord(card, false)
		if err != nil {
			stats.skipped++
			slog.Warn(config.MsgSkippedName,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyError, err)
			continue
		}
		staged.Merge(record)
	}

	if stats.processed == 0 && len(bytes.TrimSpace(data)) > 0 {
		return nil, stats, fmt.Errorf("%s: %s", config.ErrVCardParse, config.ErrNoVCard)
	}
	return staged.Records(), stats, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, config.SchemeHTTP+config.SourceSchemeSep) ||
		strings.HasPrefix(lower, config.SchemeHTTPS+config.SourceSchemeSep)
}

// redactSource keeps the query string out of the logs.
func redactSource(source string) string {
	if i := strings.IndexByte(source, '?'); i >= 0 {
		return source[:i]
	}
	return source
}
