package woocommerce

import "fmt"

// RemoteFetchError reports a failed page request. StatusCode is zero when no
// HTTP response was received.
type RemoteFetchError struct {
	Page       int
	StatusCode int
	Err        error
}

func (e *RemoteFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch products page %d (status %d): %v", e.Page, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to fetch products page %d: %v", e.Page, e.Err)
}

func (e *RemoteFetchError) Unwrap() error {
	return e.Err
}

// ValidationError reports the first record of a page that failed validation.
// The whole page is rejected.
type ValidationError struct {
	Page      int
	Index     int
	ProductID int64
	Field     string
	Tag       string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("page %d record %d (product %d): field %q failed %q", e.Page, e.Index, e.ProductID, e.Field, e.Tag)
}
