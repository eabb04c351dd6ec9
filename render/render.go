package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/durak-online/server/model"
)

// Reply payloads are plain text: one verb line followed by keyed
// fields, which keeps the per-tick client parser trivial.

func Start() string {
	return "start"
}

func Wait(info model.WaitInfo) string {
	return fmt.Sprintf("wait %d %d", info.Ready, info.Desired)
}

func Ok() string {
	return "ok"
}

func Illegal() string {
	return "illegal"
}

func End(condition string) string {
	return "end " + condition
}

// Snapshot serializes the per-seat match view. Field order follows the
// client contract: hand, own seat, hand sizes, attacker-defender, deck
// info, names, then phase and table pairs.
func Snapshot(s model.Snapshot) string {
	buf := bytes.Buffer{}
	buf.WriteString("play\n")
	buf.WriteString(fmt.Sprintf("hand %s\n", joinInts(s.Hand)))
	buf.WriteString(fmt.Sprintf("seat %d\n", s.Seat))
	buf.WriteString(fmt.Sprintf("sizes %s\n", joinInts(s.Sizes)))
	buf.WriteString(fmt.Sprintf("turn %d-%d\n", s.Attacker, s.Defender))
	if s.Bottom >= 0 {
		buf.WriteString(fmt.Sprintf("deck %d %d\n", s.DeckSize, s.Bottom))
	} else {
		buf.WriteString(fmt.Sprintf("deck %d\n", s.DeckSize))
	}
	buf.WriteString(fmt.Sprintf("names %s\n", strings.Join(s.Names, " ")))
	buf.WriteString(fmt.Sprintf("phase %s\n", s.Phase))
	buf.WriteString(fmt.Sprintf("pairs %s\n", joinPairs(s.Pairs)))
	return buf.String()
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, " ")
}

func joinPairs(pairs []model.Pair) string {
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if pair.Cover >= 0 {
			parts = append(parts, fmt.Sprintf("%d/%d", pair.Attack, pair.Cover))
		} else {
			parts = append(parts, strconv.Itoa(pair.Attack))
		}
	}
	return strings.Join(parts, " ")
}
