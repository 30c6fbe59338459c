// Package textutil provides the string comparison primitives shared by the
// aligner and the timestamp reconciler.
//
// The primary use cases are:
//   - Folding case and apostrophe variants so noisy transcripts compare
//     cleanly against hand-written lyrics
//   - Character-set Jaccard similarity with a substring override, the scoring
//     rule used to place repeated transcript lines
//   - Token fingerprints and cosine similarity for word-level scoring
//
// Fingerprints use term frequency vectors normalized for efficient comparison.
// The tokenization process folds case, splits on non-alphanumeric characters,
// and filters tokens shorter than 2 characters.
package textutil
