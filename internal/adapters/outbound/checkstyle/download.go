package checkstyle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/openkraft/javaqc/internal/domain"
)

// Fetcher stores the resource at url in dest.
type Fetcher func(ctx context.Context, url, dest string) error

// JarURL is the release asset of the self-contained Checkstyle jar.
func JarURL(version string) string {
	if version == "" {
		version = domain.DefaultCheckstyleVersion
	}
	return fmt.Sprintf("https://github.com/checkstyle/checkstyle/releases/download/checkstyle-%s/checkstyle-%s-all.jar", version, version)
}

// Download fetches url over HTTP. dest only appears once the body is
// fully written.
func Download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}
