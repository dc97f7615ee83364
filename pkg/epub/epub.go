// Package epub implements the ebook metadata decode capability. An EPUB
// is a zip archive whose META-INF/container.xml names an OPF package
// document; the Dublin Core elements of that document's metadata section
// are returned grouped by term, with their XML attributes preserved.
package epub

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"

	"github.com/prismon/mediameta/pkg/extractor"
)

const (
	containerPath = "META-INF/container.xml"
	dublinCoreNS  = "http://purl.org/dc/elements/1.1/"
)

type ocfContainer struct {
	Rootfiles []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"rootfiles>rootfile"`
}

type opfPackage struct {
	Metadata struct {
		Elements []dcElement `xml:",any"`
	} `xml:"metadata"`
}

type dcElement struct {
	XMLName xml.Name
	Value   string     `xml:",chardata"`
	Attrs   []xml.Attr `xml:",any,attr"`
}

// Decoder implements extractor.BookDecoder.
type Decoder struct{}

// New returns the default ebook decoder.
func New() *Decoder {
	return &Decoder{}
}

// Available always reports true: EPUB decoding needs nothing beyond the
// archive itself.
func (d *Decoder) Available() bool { return true }

// Decode reads the archive's OPF package and returns its Dublin Core
// metadata grouped by term ("title", "creator", ...), each term holding
// the element values in document order with their attributes.
func (d *Decoder) Decode(path string) (map[string][]extractor.DCEntry, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer archive.Close()

	opfPath, err := rootfilePath(&archive.Reader)
	if err != nil {
		return nil, err
	}

	pkg, err := readPackage(&archive.Reader, opfPath)
	if err != nil {
		return nil, err
	}

	meta := make(map[string][]extractor.DCEntry)
	for _, el := range pkg.Metadata.Elements {
		if el.XMLName.Space != dublinCoreNS {
			continue
		}
		entry := extractor.DCEntry{Value: el.Value}
		if len(el.Attrs) > 0 {
			entry.Attr = make(map[string]string, len(el.Attrs))
			for _, attr := range el.Attrs {
				entry.Attr[attr.Name.Local] = attr.Value
			}
		}
		meta[el.XMLName.Local] = append(meta[el.XMLName.Local], entry)
	}

	return meta, nil
}

func rootfilePath(archive *zip.Reader) (string, error) {
	var container ocfContainer
	if err := decodeArchiveFile(archive, containerPath, &container); err != nil {
		return "", err
	}
	if len(container.Rootfiles) == 0 || container.Rootfiles[0].FullPath == "" {
		return "", fmt.Errorf("epub container declares no rootfile")
	}
	return container.Rootfiles[0].FullPath, nil
}

func readPackage(archive *zip.Reader, opfPath string) (*opfPackage, error) {
	var pkg opfPackage
	if err := decodeArchiveFile(archive, opfPath, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func decodeArchiveFile(archive *zip.Reader, name string, v any) error {
	f, err := openArchiveFile(archive, name)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := xml.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func openArchiveFile(archive *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range archive.File {
		if path.Clean(f.Name) == path.Clean(name) {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("epub entry not found: %s", name)
}
