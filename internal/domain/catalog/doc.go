// Package catalog describes question packages and the questions they hold.
//
// A package is sold (or offered free) as one timed tryout. Its questions fall
// into the three SKD categories: TWK (national insight), TIU (general
// intelligence) and TKP (personal characteristics). TWK and TIU questions have
// one correct option; every TKP option carries a weight from 1 to 5.
package catalog
