// Package catalog reads and writes the rent catalog in its fixed CSV column
// contract.
package catalog

import (
	"bytes"
	"crypto/md5"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"rentcompare/server/internal/models"
)

// InputColumns is the authoritative input column contract. Column order in
// the file is irrelevant; names are fixed.
var InputColumns = []string{
	"zone",
	"area",
	"region",
	"rent_median_1bhk",
	"rent_min_1bhk",
	"rent_max_1bhk",
	"deposit_ratio",
}

// Read parses catalog rows from CSV. The three rent columns are coerced to
// integers; unparseable values become missing (nil) rather than errors. Only
// a malformed CSV or an absent contract column fails the read.
func Read(r io.Reader) ([]models.Listing, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range InputColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("catalog is missing required column %q", name)
		}
	}

	var listings []models.Listing
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row: %w", err)
		}

		field := func(name string) string {
			i := index[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		listings = append(listings, models.Listing{
			Zone:           field("zone"),
			Area:           field("area"),
			Region:         field("region"),
			RentMedian1BHK: coerceRent(field("rent_median_1bhk")),
			RentMin1BHK:    coerceRent(field("rent_min_1bhk")),
			RentMax1BHK:    coerceRent(field("rent_max_1bhk")),
			DepositRatio:   field("deposit_ratio"),
		})
	}

	return listings, nil
}

// coerceRent converts a rent cell to an integer amount. Anything that is not
// a number becomes missing.
func coerceRent(s string) *int {
	if s == "" {
		return nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return &v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		v := int(f)
		return &v
	}
	return nil
}

// Fingerprint returns the md5 hex digest of the raw catalog bytes, used as
// the snapshot version.
func Fingerprint(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// FileSource loads the catalog from a CSV file on disk.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Path() string {
	return s.path
}

// Load reads and parses the catalog file, returning the rows together with
// the file's content fingerprint.
func (s *FileSource) Load() ([]models.Listing, string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read catalog file: %w", err)
	}

	listings, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	return listings, Fingerprint(data), nil
}
