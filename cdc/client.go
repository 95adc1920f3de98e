package cdc

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
	"golang.org/x/net/html"

	"dwdweather/knowledge"
)

// Client fetches directory listings and resource bodies from the CDC
// server, over HTTPS or FTP depending on the configured base URI.
type Client struct {
	baseURI   string
	res       *knowledge.Resolution
	http      *http.Client
	cache     *ResponseCache
	timeout   time.Duration
	ftpUser   string
	ftpPasswd string
}

type ClientOptions struct {
	// Base server URI without the resolution segment. Defaults to DefaultBaseURI.
	BaseURI string
	// Per-request timeout. A timeout degrades the affected category, it
	// never aborts a whole batch.
	Timeout time.Duration
	// Optional response cache in front of fetches. Purely a latency
	// optimization within its TTL, never load-bearing for correctness.
	Cache *ResponseCache
	// Credentials for the legacy FTP server era.
	FTPUser     string
	FTPPassword string
}

func NewClient(res *knowledge.Resolution, opts ClientOptions) *Client {
	if opts.BaseURI == "" {
		opts.BaseURI = DefaultBaseURI
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.FTPUser == "" {
		opts.FTPUser = "anonymous"
	}
	if opts.FTPPassword == "" {
		opts.FTPPassword = "guest@example.com"
	}
	return &Client{
		baseURI:   strings.TrimRight(opts.BaseURI, "/"),
		res:       res,
		http:      &http.Client{Timeout: opts.Timeout},
		cache:     opts.Cache,
		timeout:   opts.Timeout,
		ftpUser:   opts.FTPUser,
		ftpPasswd: opts.FTPPassword,
	}
}

func (c *Client) resolutionURI() string {
	return c.baseURI + "/" + c.res.Name
}

// ListDirectory returns the absolute URIs of all entries in a remote
// directory, in server listing order.
func (c *Client) ListDirectory(uri string) ([]string, error) {
	if strings.HasPrefix(uri, "ftp://") {
		return c.listFTP(uri)
	}
	return c.listHTTP(uri)
}

// Fetch returns the body of a remote resource.
func (c *Client) Fetch(uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "ftp://") {
		return c.fetchFTP(uri)
	}
	return c.fetchHTTP(uri)
}

// FetchArchive downloads a ZIP archive and extracts the single embedded
// data file, returning its name and payload.
func (c *Client) FetchArchive(uri string) (string, []byte, error) {
	body, err := c.Fetch(uri)
	if err != nil {
		return "", nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", nil, fmt.Errorf("reading archive %s: %w", uri, err)
	}
	for _, f := range zr.File {
		if !IsDataFile(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", nil, err
		}
		payload, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", nil, err
		}
		slog.Info("Reading from Zip: " + f.Name)
		return f.Name, payload, nil
	}
	return "", nil, fmt.Errorf("no data file found in archive %s", uri)
}

// IsDataFile reports whether an archive member is the actual data file.
// The current layout prefixes it with "produkt_"; older server revisions
// used "Terminwerte" and "Stationsmetadaten" in the member names.
func IsDataFile(name string) bool {
	base := path.Base(name)
	return strings.HasPrefix(base, "produkt_") ||
		strings.Contains(base, "Terminwerte") ||
		strings.Contains(base, "Stationsmetadaten")
}

// GetStations fetches the station description file of every requested
// category. Categories the server does not publish for this resolution
// are skipped with a warning.
func (c *Client) GetStations(categories []knowledge.Category) ([]Result, error) {
	slog.Info("Loading station data from CDC")
	var results []Result
	for _, cat := range categories {
		indexURI := c.categoryIndexURI(cat, "recent")
		entries, err := c.ListDirectory(indexURI)
		if err != nil {
			slog.Warn(fmt.Sprintf("Resolution %q has no category %q or request failed: %s", c.res.Name, cat.Name, err))
			continue
		}
		for _, entry := range entries {
			if !strings.Contains(entry, "Beschreibung_Stationen") || !strings.HasSuffix(entry, ".txt") {
				continue
			}
			slog.Info("Fetching resource " + entry)
			payload, err := c.Fetch(entry)
			if err != nil {
				slog.Warn(fmt.Sprintf("Fetching %s failed: %s", entry, err))
				continue
			}
			results = append(results, Result{
				Resolution: c.res.Name,
				Category:   cat,
				URI:        entry,
				Payload:    payload,
			})
		}
	}
	return results, nil
}

// GetMeasurements resolves and downloads the per-station archives of one
// category for the given timerange labels ("now", "recent", "historical").
// Station data files are matched by the zero-padded station id token in
// their filename. Missing data is not an error, only an empty result.
func (c *Client) GetMeasurements(stationID int, cat knowledge.Category, timeranges []string) ([]Result, error) {
	token := fmt.Sprintf("_%05d_", stationID)
	var results []Result

	fetchFrom := func(indexURI string) {
		entries, err := c.ListDirectory(indexURI)
		if err != nil {
			slog.Warn(fmt.Sprintf("Could not acquire resource index from %s: %s", indexURI, err))
			return
		}
		var match string
		for _, entry := range entries {
			if strings.Contains(entry, token) && strings.HasSuffix(entry, ".zip") {
				match = entry
				break
			}
		}
		if match == "" {
			slog.Warn(fmt.Sprintf("Station %d has no data for category %q", stationID, cat.Name))
			return
		}
		slog.Info("Fetching resource " + match)
		name, payload, err := c.FetchArchive(match)
		if err != nil {
			slog.Warn(fmt.Sprintf("Unpacking %s failed: %s", match, err))
			return
		}
		results = append(results, Result{
			Resolution: c.res.Name,
			Category:   cat,
			URI:        match + "/" + name,
			Payload:    payload,
		})
	}

	if c.flatCategory(cat) {
		fetchFrom(c.resolutionURI() + "/" + cat.Dir())
	} else {
		for _, timerange := range timeranges {
			fetchFrom(c.categoryIndexURI(cat, timerange))
		}
	}
	return results, nil
}

// The hourly solar category has no timerange subfolders on the server.
func (c *Client) flatCategory(cat knowledge.Category) bool {
	return cat.Name == "solar" && c.res.Name == "hourly"
}

func (c *Client) categoryIndexURI(cat knowledge.Category, timerange string) string {
	if c.flatCategory(cat) {
		return c.resolutionURI() + "/" + cat.Dir()
	}
	return c.resolutionURI() + "/" + cat.Dir() + "/" + timerange
}

func (c *Client) fetchHTTP(uri string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(uri); ok {
			return body, nil
		}
	}
	resp, err := c.http.Get(uri)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching resource %s failed: %s", uri, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		if err := c.cache.Put(uri, body); err != nil {
			slog.Warn(fmt.Sprintf("Could not cache response for %s: %s", uri, err))
		}
	}
	return body, nil
}

func (c *Client) listHTTP(uri string) ([]string, error) {
	body, err := c.fetchHTTP(uri + "/")
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing listing of %s: %w", uri, err)
	}

	var entries []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				href := attr.Val
				// Keep plain relative entries, skip parent links and queries
				if href == "" || href == "../" || strings.HasPrefix(href, "?") ||
					strings.HasPrefix(href, "/") || strings.Contains(href, "://") {
					continue
				}
				entries = append(entries, uri+"/"+strings.TrimSuffix(href, "/"))
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return entries, nil
}

func (c *Client) ftpConnect(u *url.URL) (*ftp.ServerConn, error) {
	addr := u.Host
	if u.Port() == "" {
		addr += ":21"
	}
	conn, err := ftp.Dial(addr, ftp.DialWithTimeout(c.timeout))
	if err != nil {
		return nil, err
	}
	if err := conn.Login(c.ftpUser, c.ftpPasswd); err != nil {
		conn.Quit()
		return nil, err
	}
	return conn, nil
}

func (c *Client) listFTP(uri string) ([]string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}
	conn, err := c.ftpConnect(u)
	if err != nil {
		return nil, err
	}
	defer conn.Quit()

	names, err := conn.NameList(u.Path)
	if err != nil {
		return nil, err
	}
	entries := make([]string, 0, len(names))
	for _, name := range names {
		entries = append(entries, uri+"/"+path.Base(name))
	}
	return entries, nil
}

func (c *Client) fetchFTP(uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}
	conn, err := c.ftpConnect(u)
	if err != nil {
		return nil, err
	}
	defer conn.Quit()

	resp, err := conn.Retr(u.Path)
	if err != nil {
		return nil, err
	}
	defer resp.Close()
	return io.ReadAll(resp)
}
