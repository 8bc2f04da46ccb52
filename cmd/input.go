/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/gnames/gnlineage/internal/iofs"
)

// readArgs returns command arguments followed by non-empty lines of the
// file, if the file is given.
func readArgs(args []string, file string) ([]string, error) {
	var res []string
	for _, v := range args {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	if file == "" {
		return res, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, iofs.ReadFileError(file, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res = append(res, line)
	}
	if err = scanner.Err(); err != nil {
		return nil, iofs.ReadFileError(file, err)
	}
	return res, nil
}

// parseIDs converts strings to distinct taxon IDs keeping their order.
func parseIDs(ss []string) ([]int, error) {
	seen := make(map[int]struct{})
	var res []int
	for _, v := range ss {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			return nil, InvalidTaxonIDError(v)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res, nil
}
