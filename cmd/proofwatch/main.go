// proofwatch backfills OCR amount suggestions for uploaded payment proofs.
// By default it runs one sweep over proofs that have no suggestion yet; with
// -watch it stays resident and picks up files as they land in the proof
// directory.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finapi/pkg/ocr"
	"finapi/store"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
)

func main() {
	watch := flag.Bool("watch", false, "keep watching the proof directory after the initial sweep")
	limit := flag.Int("limit", 0, "max proofs per sweep (0 = all)")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		slog.Error("DB_DSN not set in environment")
		os.Exit(1)
	}
	db, err := store.Open(dsn)
	if err != nil {
		slog.Error("failed to open db", "error", err)
		os.Exit(1)
	}
	s := store.New(db)
	base := uploadBaseDir()

	sweep(s, base, *limit)

	if *watch {
		if err := watchDirectory(s, base); err != nil {
			slog.Error("watch failed", "error", err)
			os.Exit(1)
		}
	}
}

// sweep retries every proof still missing a suggestion, including ones marked
// failed by an earlier pass.
func sweep(s *store.Store, base string, limit int) {
	proofs, err := s.ProofsPendingSuggestion(limit)
	if err != nil {
		slog.Error("failed to list pending proofs", "error", err)
		return
	}
	slog.Info("sweeping proofs without suggestions", "count", len(proofs))
	for _, p := range proofs {
		suggest(s, base, p.ID, p.StorePath)
	}
}

func suggest(s *store.Store, base string, proofID uint, storePath string) {
	full := filepath.Join(base, storePath)
	amt, raw, err := ocr.SuggestAmount(full)
	if err != nil {
		slog.Warn("ocr failed", "proof_id", proofID, "error", err)
		if uerr := s.SetProofSuggestion(proofID, nil, err.Error()); uerr != nil {
			slog.Warn("failed to record ocr failure", "proof_id", proofID, "error", uerr)
		}
		return
	}
	if err := s.SetProofSuggestion(proofID, &amt, ""); err != nil {
		slog.Warn("failed to store suggestion", "proof_id", proofID, "error", err)
		return
	}
	slog.Info("suggestion stored", "proof_id", proofID, "amount", amt, "raw", raw)
}

// watchDirectory follows the proof directory with a debounce so files are
// only processed once they stop changing.
func watchDirectory(s *store.Store, base string) error {
	dir := filepath.Join(base, "proofs")
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	slog.Info("watching proof directory", "dir", dir)

	pending := map[string]time.Time{}
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				name := filepath.Base(ev.Name)
				if !isSupportedExt(name) {
					continue
				}
				pending[name] = time.Now()
			}
		case <-ticker.C:
			now := time.Now()
			for name, t := range pending {
				if now.Sub(t) < 300*time.Millisecond { // still settling
					continue
				}
				delete(pending, name)
				storePath := "proofs/" + name
				p, err := s.ProofByStorePath(storePath)
				if err != nil {
					slog.Warn("no proof record for file", "file", name)
					continue
				}
				if p.SuggestedValue == nil {
					suggest(s, base, p.ID, p.StorePath)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		}
	}
}

func isSupportedExt(name string) bool {
	// skip OCR-generated temp files to avoid recursive processing
	if strings.Contains(name, ".ocr.") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".tif", ".tiff", ".bmp":
		return true
	}
	return false
}

func uploadBaseDir() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}
