// Package document models a single .aio input and extracts its tag-delimited
// blocks. Two delimiter families are recognized: angle-bracket tags such as
// <video>...</video> and parenthesis tags such as (esp)...(/esp). Tags never
// nest; the first closing tag after an opening tag ends the capture.
package document
