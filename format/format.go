/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package format renders soft clock timestamps as text.

Timestamps are shifted by the zone's combined offset, decomposed, and then
either printed as an asctime-style stamp or handed to a strftime-style
Formatter. The numeric zone directive %z is substituted before the pattern
reaches the Formatter, as ±HH:MM or Z.
*/
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/facebook/softclock/calendar"
)

// Well known patterns
const (
	FormatDefault     = "asctime"
	FormatISO8601Full = "%Y-%m-%dT%H:%M:%S%z"
)

// Formatter renders local calendar fields with a strftime pattern.
// offset is the combined zone offset the fields were shifted by.
type Formatter interface {
	Format(f calendar.Fields, pattern string, offset int32) string
}

// StrftimeFormatter is a Formatter backed by github.com/ncruces/go-strftime
type StrftimeFormatter struct{}

// Format implements Formatter
func (StrftimeFormatter) Format(f calendar.Fields, pattern string, offset int32) string {
	name := "UTC"
	if offset != 0 {
		name = ZoneString(offset)
	}
	t := time.Date(f.FullYear(), time.Month(f.Month), f.Day, f.Hour, f.Minute, f.Second, 0, time.FixedZone(name, int(offset)))
	return strftime.Format(pattern, t)
}

// Presenter renders timestamps in a zone
type Presenter struct {
	Zone      Zone
	Formatter Formatter
	// Pattern is used when Format is called without one
	Pattern string
}

// NewPresenter returns a UTC presenter using asctime by default
func NewPresenter() *Presenter {
	return &Presenter{
		Zone:      NewZone(),
		Formatter: StrftimeFormatter{},
		Pattern:   FormatDefault,
	}
}

// Default renders t as "Thu Jan  1 00:00:00 1970"
func (p *Presenter) Default(t calendar.Time) string {
	return Asctime(calendar.Decompose(p.Zone.Local(t)))
}

// Format renders t with pattern. An empty pattern means p.Pattern,
// and FormatDefault means Default.
func (p *Presenter) Format(t calendar.Time, pattern string) string {
	if pattern == "" {
		pattern = p.Pattern
	}
	if pattern == "" || pattern == FormatDefault {
		return p.Default(t)
	}
	formatter := p.Formatter
	if formatter == nil {
		formatter = StrftimeFormatter{}
	}
	offset := p.Zone.Combined()
	return formatter.Format(calendar.Decompose(p.Zone.Local(t)), ReplaceZone(pattern, offset), offset)
}

// Asctime renders fields the way C asctime does, without the trailing newline
func Asctime(f calendar.Fields) string {
	return fmt.Sprintf("%s %s %2d %02d:%02d:%02d %d",
		calendar.DayShortName(f.Weekday),
		calendar.MonthShortName(f.Month),
		f.Day, f.Hour, f.Minute, f.Second,
		f.FullYear(),
	)
}

// ReplaceZone substitutes every %z directive in pattern with ZoneString(offset).
// Escaped percent signs (%%) are left for the formatter.
func ReplaceZone(pattern string, offset int32) string {
	if !strings.Contains(pattern, "%z") {
		return pattern
	}
	zone := ZoneString(offset)
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '%' && i+1 < len(pattern) {
			switch pattern[i+1] {
			case 'z':
				b.WriteString(zone)
				i++
				continue
			case '%':
				b.WriteString("%%")
				i++
				continue
			}
		}
		b.WriteByte(pattern[i])
	}
	return b.String()
}
