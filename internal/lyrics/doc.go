// Package lyrics turns raw lyric or transcript text into typed tokens and clean
// reference lines.
//
// Tokenize keeps the structure the aligner needs: every content line ends
// with a line-break token and bracketed section headers ("[Chorus]") survive
// as single tokens. ReferenceLines strips that structure back out, yielding
// the ordered lyric lines the timestamp reconciler assigns times to.
package lyrics
