package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/BlockFit/internal/model"
)

// ImportText imports blocks from a file in the text format, one block per
// line: "A:0,0;1,0;1,1".
func ImportText(path string) ImportResult {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	defer f.Close()

	return ParseBlocks(f)
}

// ParseBlocks reads blocks in the text format. Coordinates are signed
// decimal integers and are not trimmed. A trailing carriage return is
// dropped from each line. Every malformed line is reported; no blocks are
// returned when any line fails.
func ParseBlocks(r io.Reader) ImportResult {
	result := ImportResult{}
	names := make(map[rune]int)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Line %d: Empty line skipped", lineNum))
			continue
		}

		name, points, err := parseLine(line)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: %v", lineNum, err))
			continue
		}
		if first, ok := names[name]; ok {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Line %d: %v: %c already defined on line %d", lineNum, model.ErrDuplicateName, name, first))
			continue
		}
		names[name] = lineNum

		b, err := model.NewBlock(name, points)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: %v", lineNum, err))
			continue
		}
		if b.Size() < len(points) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Line %d: Block %c has %d duplicate point(s)", lineNum, name, len(points)-b.Size()))
		}
		result.Blocks = append(result.Blocks, b)
	}
	if err := scanner.Err(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read input: %v", err))
	}

	if len(result.Errors) > 0 {
		result.Blocks = nil
	}
	return result
}

// parseLine splits "<name>:<x>,<y>;<x>,<y>..." into its name and points.
func parseLine(line string) (rune, []model.Point, error) {
	nameStr, rest, ok := strings.Cut(line, ":")
	if !ok {
		return 0, nil, fmt.Errorf("missing ':' after block name in %q", line)
	}
	name, err := parseName(nameStr)
	if err != nil {
		return 0, nil, err
	}
	if rest == "" {
		return 0, nil, fmt.Errorf("block %c has no points", name)
	}

	fields := strings.Split(rest, ";")
	points := make([]model.Point, 0, len(fields))
	for _, field := range fields {
		xStr, yStr, ok := strings.Cut(field, ",")
		if !ok {
			return 0, nil, fmt.Errorf("invalid point %q, expected x,y", field)
		}
		x, err := strconv.Atoi(xStr)
		if err != nil {
			return 0, nil, fmt.Errorf("invalid x coordinate %q", xStr)
		}
		y, err := strconv.Atoi(yStr)
		if err != nil {
			return 0, nil, fmt.Errorf("invalid y coordinate %q", yStr)
		}
		points = append(points, model.Point{X: x, Y: y})
	}
	return name, points, nil
}
