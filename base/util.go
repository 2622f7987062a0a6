package base

import (
	"fmt"
	"hash/fnv"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/deiu/rdf2go"
)

var fixBooleanRegex = regexp.MustCompile(`(true|false)(\s*)]`)

// FixBooleansInRDF works around a parsing bug in rdf2go where a
// collection ending right after a bare boolean literal is rejected.
func FixBooleansInRDF(data []byte) []byte {
	return fixBooleanRegex.ReplaceAll(data, []byte("${1} ; ]"))
}

// ParseGraph parses Turtle text into an rdf2go graph. It is the engine's
// only Turtle parser (used by interop.ImportTurtle); everything
// downstream consumes the resulting triples through the store's mutation
// API, never the Turtle grammar itself.
func ParseGraph(reader io.Reader) (graph *rdf2go.Graph, err error) {
	graph = rdf2go.NewGraph("")
	err = graph.Parse(reader, "text/turtle")
	return
}

// CacheLoad fetches a URL's body, caching it on disk under local/cache so
// repeated federated queries against the same remote endpoint don't
// re-fetch on every call.
func CacheLoad(url string, header *http.Header) ([]byte, error) {
	cacheFilename := path.Join("local", "cache", fmt.Sprintf("%x", Hash([]byte(url))))
	data, err := os.ReadFile(cacheFilename)
	if err == nil {
		return data, nil
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if header != nil {
		req.Header = *header
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if len(contentType) > 0 && !strings.HasPrefix(contentType, "text/html") {
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
	}
	if err = os.WriteFile(cacheFilename, data, 0600); err != nil {
		log.Printf("warning: failed caching response for url %s: %v", url, err)
	}
	return data, nil
}

// Hash returns a 32-bit FNV-1a hash, used for cache keys and content
// fingerprints.
func Hash(data []byte) uint32 {
	h := fnv.New32a()
	h.Write(data)
	return h.Sum32()
}
