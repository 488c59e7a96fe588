package migrate

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/repo"
	"github.com/pkordes/european-living/internal/storage"
)

// ArticleStore is the part of repo.ArticleRepo the importer needs.
type ArticleStore interface {
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, a domain.Article) (domain.Article, error)
	FindDuplicateSlugs(ctx context.Context) ([]repo.DuplicateSlug, error)
	DeleteDuplicates(ctx context.Context, slug string, keepID uuid.UUID) (int64, error)
}

// ObjectStore is the part of storage.Client the importer needs.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, objectPath string, body []byte, contentType string, upsert bool) error
	PublicURL(bucket, objectPath string) string
}

// imagePrefix is the folder article images are stored under.
const imagePrefix = "articles/"

var imageExt = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)

// Options configures a Migrator.
type Options struct {
	Bucket     string
	ImagesDir  string
	ContentDir string

	// MappingFile receives the old-path to URL mapping as JSON. Empty skips it.
	MappingFile string

	// Concurrency bounds parallel uploads. Defaults to 4.
	Concurrency int

	// Retries is how often a temporary upload failure is retried. Defaults to 3.
	Retries uint64

	// Backoff is the first retry delay; later ones grow exponentially.
	// Defaults to 500ms.
	Backoff time.Duration
}

// Migrator runs the three migration steps: duplicate cleanup, image upload
// and article import.
type Migrator struct {
	articles ArticleStore
	objects  ObjectStore
	opts     Options
	out      io.Writer
	log      *slog.Logger
}

// New returns a Migrator printing progress to out.
func New(articles ArticleStore, objects ObjectStore, opts Options, out io.Writer, log *slog.Logger) *Migrator {
	if opts.Concurrency < 1 {
		opts.Concurrency = 4
	}
	if opts.Retries == 0 {
		opts.Retries = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 500 * time.Millisecond
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Migrator{articles: articles, objects: objects, opts: opts, out: out, log: log}
}

// Summary counts the outcome of the article import.
type Summary struct {
	Success int
	Skipped int
	Failed  int
	Total   int
}

// Run executes every step in order. Only failures that stop the whole run
// (an unreadable directory, a cancelled context) are returned; per-file
// failures are reported and counted.
func (m *Migrator) Run(ctx context.Context) (Summary, error) {
	fmt.Fprintln(m.out, "Starting article migration")
	fmt.Fprintln(m.out, strings.Repeat("=", 50))

	m.CleanupDuplicates(ctx)

	mapping, err := m.UploadImages(ctx)
	if err != nil {
		return Summary{}, err
	}
	if m.opts.MappingFile != "" {
		if err := writeMapping(m.opts.MappingFile, mapping); err != nil {
			return Summary{}, err
		}
		fmt.Fprintf(m.out, "Saved image mapping to %s\n", m.opts.MappingFile)
	}

	sum, err := m.ImportArticles(ctx, mapping)
	if err != nil {
		return sum, err
	}
	fmt.Fprintln(m.out, strings.Repeat("=", 50))
	fmt.Fprintln(m.out, "Migration complete")
	return sum, nil
}

// CleanupDuplicates keeps the newest article of every duplicated slug and
// deletes the rest, one slug at a time. Nothing here is fatal: a failed
// lookup or delete is reported and the migration carries on.
func (m *Migrator) CleanupDuplicates(ctx context.Context) int {
	fmt.Fprintln(m.out, "Step 0: removing duplicate articles")

	dups, err := m.articles.FindDuplicateSlugs(ctx)
	if err != nil {
		m.log.WarnContext(ctx, "could not check for duplicates", "error", err)
		fmt.Fprintln(m.out, "Could not check for duplicates, continuing")
		return 0
	}
	if len(dups) == 0 {
		fmt.Fprintln(m.out, "No duplicates found")
		return 0
	}

	removed := 0
	for _, d := range dups {
		n, err := m.articles.DeleteDuplicates(ctx, d.Slug, d.LatestID)
		if err != nil {
			m.log.ErrorContext(ctx, "failed to remove duplicates", "slug", d.Slug, "error", err)
			fmt.Fprintf(m.out, "  failed: %s\n", d.Slug)
			continue
		}
		removed += int(n)
		fmt.Fprintf(m.out, "  removed %d duplicate(s) of %s\n", n, d.Slug)
	}
	return removed
}

// UploadImages stores every image in ImagesDir under articles/<md5><ext>
// and returns a mapping from each way content may reference the local file
// to its public URL. Uploads run in parallel and temporary storage errors
// are retried with exponential backoff. A file that still fails is reported
// and left out of the mapping.
func (m *Migrator) UploadImages(ctx context.Context) (map[string]string, error) {
	fmt.Fprintln(m.out, "Step 1: uploading images")

	entries, err := os.ReadDir(m.opts.ImagesDir)
	if err != nil {
		return nil, fmt.Errorf("migrate.UploadImages: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && imageExt.MatchString(e.Name()) {
			files = append(files, e.Name())
		}
	}
	fmt.Fprintf(m.out, "Found %d images to upload\n", len(files))

	var (
		mu       sync.Mutex
		mapping  = make(map[string]string, len(files)*3)
		uploaded int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.Concurrency)
	for _, name := range files {
		g.Go(func() error {
			objectPath, err := m.uploadImage(gctx, name)
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}

			// out is shared by every upload.
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				m.log.ErrorContext(gctx, "image upload failed", "file", name, "error", err)
				fmt.Fprintf(m.out, "  failed: %s: %v\n", name, err)
				return nil
			}
			fmt.Fprintf(m.out, "  %s -> %s\n", name, objectPath)
			url := m.objects.PublicURL(m.opts.Bucket, objectPath)
			for _, ref := range localRefs(name) {
				mapping[ref] = url
			}
			uploaded++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("migrate.UploadImages: %w", err)
	}

	fmt.Fprintf(m.out, "Uploaded %d unique images\n", uploaded)
	return mapping, nil
}

// uploadImage stores one file and returns its object path.
func (m *Migrator) uploadImage(ctx context.Context, name string) (string, error) {
	body, err := os.ReadFile(filepath.Join(m.opts.ImagesDir, name))
	if err != nil {
		return "", err
	}
	objectPath := imagePrefix + storage.HashedName(name, body)
	contentType := "image/" + strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))

	backoff := retry.WithMaxRetries(m.opts.Retries, retry.NewExponential(m.opts.Backoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := m.objects.Upload(ctx, m.opts.Bucket, objectPath, body, contentType, true)
		var se *storage.StatusError
		if errors.As(err, &se) && se.Temporary() {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return "", err
	}
	return objectPath, nil
}

// localRefs lists the paths articles use to point at a local image.
func localRefs(name string) []string {
	return []string{
		"/images/" + name,
		"./images/" + name,
		"../public/images/" + name,
	}
}

// ImportArticles inserts every *.md file in ContentDir whose slug is not
// taken yet, rewriting image references through mapping.
func (m *Migrator) ImportArticles(ctx context.Context, mapping map[string]string) (Summary, error) {
	fmt.Fprintln(m.out, "Step 2: importing articles")

	entries, err := os.ReadDir(m.opts.ContentDir)
	if err != nil {
		return Summary{}, fmt.Errorf("migrate.ImportArticles: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			files = append(files, e.Name())
		}
	}
	fmt.Fprintf(m.out, "Found %d markdown files\n", len(files))

	images := replacerFor(mapping)
	sum := Summary{Total: len(files)}
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return sum, fmt.Errorf("migrate.ImportArticles: %w", err)
		}
		skipped, err := m.importArticle(ctx, name, images)
		switch {
		case err != nil:
			m.log.ErrorContext(ctx, "article import failed", "file", name, "error", err)
			fmt.Fprintf(m.out, "  failed: %s: %v\n", name, err)
			sum.Failed++
		case skipped:
			sum.Skipped++
		default:
			sum.Success++
		}
	}

	fmt.Fprintln(m.out, "Migration summary:")
	fmt.Fprintf(m.out, "  success: %d\n  skipped: %d\n  failed:  %d\n  total:   %d\n",
		sum.Success, sum.Skipped, sum.Failed, sum.Total)
	return sum, nil
}

func (m *Migrator) importArticle(ctx context.Context, name string, images *strings.Replacer) (skipped bool, err error) {
	raw, err := os.ReadFile(filepath.Join(m.opts.ContentDir, name))
	if err != nil {
		return false, err
	}
	a := ParseArticle(name, raw, images)

	exists, err := m.articles.ExistsBySlug(ctx, a.Slug)
	if err != nil {
		return false, err
	}
	if exists {
		fmt.Fprintf(m.out, "  skipped: %s (already exists)\n", a.Slug)
		return true, nil
	}

	if _, err := m.articles.Create(ctx, a); err != nil {
		return false, err
	}
	fmt.Fprintf(m.out, "  %s (%s)\n", a.Title, a.Slug)
	return false, nil
}

// replacerFor builds one replacer for the whole mapping. Keys are sorted so
// the result does not depend on map order; at any position the leftmost
// match wins, so "./images/x" is never rewritten as "/images/x".
func replacerFor(mapping map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, mapping[k])
	}
	return strings.NewReplacer(pairs...)
}

func writeMapping(path string, mapping map[string]string) error {
	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return fmt.Errorf("migrate.writeMapping: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("migrate.writeMapping: %w", err)
	}
	return nil
}

// Lister is the part of storage.Client that ListImageURLs needs.
type Lister interface {
	ListAll(ctx context.Context, bucket, prefix string, pageSize int) ([]storage.Object, error)
	PublicURL(bucket, objectPath string) string
}

// listPageSize is the largest page the storage API returns.
const listPageSize = 100

// ListImageURLs prints the public URL of every object in bucket followed by
// a total, and returns the number of URLs printed.
func ListImageURLs(ctx context.Context, l Lister, bucket string, out io.Writer) (int, error) {
	objects, err := l.ListAll(ctx, bucket, "", listPageSize)
	if err != nil {
		return 0, fmt.Errorf("migrate.ListImageURLs: %w", err)
	}
	if len(objects) == 0 {
		fmt.Fprintln(out, "Bucket is empty or returned no files.")
		return 0, nil
	}

	names := make([]string, len(objects))
	for i, o := range objects {
		names[i] = o.Name
	}
	slices.Sort(names)

	fmt.Fprintln(out, "Public URLs:")
	for _, name := range names {
		fmt.Fprintln(out, l.PublicURL(bucket, name))
	}
	fmt.Fprintf(out, "Total %d URLs.\n", len(names))
	return len(names), nil
}
