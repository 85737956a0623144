package extract

import "errors"

// ErrStructureNotFound marks a document that does not contain the markup
// container an extractor expected. At fight and fighter granularity this is
// recoverable: the affected record is dropped, not the batch.
var ErrStructureNotFound = errors.New("expected page structure not found")
