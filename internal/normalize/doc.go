// Package normalize turns free-text track and album titles into comparable
// keys.
//
// Normalization is pure and idempotent. Edition qualifiers are dropped unless
// two distinct titles in the same album would collide, in which case
// TitleSet keeps the qualifiers as disambiguators.
package normalize
