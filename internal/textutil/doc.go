// Package textutil provides the text normalization applied to raw personnel
// values before they are matched against names.
//
// Scraped values sometimes mix composed and decomposed code points or
// full-width and half-width forms. The normalizers here fold those
// differences so the same name compares equal across partitions.
package textutil
