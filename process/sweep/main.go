// Command sweep removes files from the content directory that no salary
// document references anymore: leftovers from uploads whose metadata write
// failed, or from deletes where the file removal did not stick.
//
// One-shot by default; -watch keeps watching the directory and re-sweeps
// (debounced) when new files appear. Files younger than -age are never
// touched, so an upload in flight is not reaped before its metadata lands.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"inventaris/models"
	"inventaris/pkg/intake"
)

var (
	verbose bool
	dryRun  bool
)

func main() {
	dir := flag.String("dir", defaultDir(), "content directory to sweep")
	watch := flag.Bool("watch", false, "keep watching the directory after the initial sweep")
	age := flag.Duration("age", 15*time.Minute, "only remove files older than this")
	flag.BoolVar(&dryRun, "dry-run", false, "report orphans without removing them")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.Parse()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	sweep(db, *dir, *age)

	if *watch {
		if err := watchDirectory(db, *dir, *age); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	}
}

func defaultDir() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}

// sweep removes every file in dir (previews included) that no document row
// references and that is older than minAge.
func sweep(db *gorm.DB, dir string, minAge time.Duration) {
	var filenames []string
	if err := db.Model(&models.SalaryDocument{}).Pluck("filename", &filenames).Error; err != nil {
		log.Printf("failed to load document filenames: %v", err)
		return
	}
	referenced := make(map[string]bool, len(filenames)*2)
	for _, name := range filenames {
		referenced[name] = true
		referenced[intake.PreviewName(name)] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("failed to read %s: %v", dir, err)
		return
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || referenced[e.Name()] {
			continue
		}
		info, err := e.Info()
		if err != nil || time.Since(info.ModTime()) < minAge {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if dryRun {
			log.Printf("orphan: %s", path)
			continue
		}
		if err := os.Remove(path); err != nil {
			log.Printf("failed to remove %s: %v", path, err)
			continue
		}
		removed++
		if verbose {
			log.Printf("removed %s", path)
		}
	}
	log.Printf("sweep of %s done, removed %d orphan(s)", dir, removed)
}

// watchDirectory re-sweeps (debounced) whenever files are created in dir.
func watchDirectory(db *gorm.DB, dir string, minAge time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	var pending time.Time
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				pending = time.Now()
			}
		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) > 30*time.Second {
				pending = time.Time{}
				sweep(db, dir, minAge)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
