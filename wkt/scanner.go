//  Copyright (c) 2024 Couchbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 		http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wkt

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenWord
	tokenNumber
	tokenLParen
	tokenRParen
	tokenComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// scanner splits WKT input into words, numbers and punctuation.
type scanner struct {
	src string
	pos int
}

func (s *scanner) next() (token, error) {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
	if s.pos >= len(s.src) {
		return token{kind: tokenEOF, pos: s.pos}, nil
	}
	start := s.pos
	c := s.src[s.pos]
	switch {
	case c == '(':
		s.pos++
		return token{kind: tokenLParen, text: "(", pos: start}, nil
	case c == ')':
		s.pos++
		return token{kind: tokenRParen, text: ")", pos: start}, nil
	case c == ',':
		s.pos++
		return token{kind: tokenComma, text: ",", pos: start}, nil
	case isWordChar(c):
		for s.pos < len(s.src) && isWordChar(s.src[s.pos]) {
			s.pos++
		}
		return token{kind: tokenWord, text: strings.ToUpper(s.src[start:s.pos]), pos: start}, nil
	case isNumberChar(c):
		for s.pos < len(s.src) && isNumberChar(s.src[s.pos]) {
			s.pos++
		}
		return token{kind: tokenNumber, text: s.src[start:s.pos], pos: start}, nil
	}
	return token{}, fmt.Errorf("wkt: unexpected character %q at position %d", c, start)
}

// peek returns the next token without consuming it.
func (s *scanner) peek() (token, error) {
	savedPos := s.pos
	tok, err := s.next()
	s.pos = savedPos
	return tok, err
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNumberChar(c byte) bool {
	return c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.' ||
		c == 'e' || c == 'E'
}
