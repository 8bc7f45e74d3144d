package utils

import (
	// Go Internal Packages
	"sort"
	"strconv"
	"strings"
)

func JoinInt32Slice(ints []int32) string {
	strs := make([]string, len(ints))
	for i, v := range ints {
		strs[i] = strconv.FormatInt(int64(v), 10)
	}
	return strings.Join(strs, ",")
}

// FormatAssignment renders a topic -> partitions map as "topic[0,1];other[3]",
// topics and partitions sorted so log lines are stable.
func FormatAssignment(assigned map[string][]int32) string {
	topics := make([]string, 0, len(assigned))
	for topic := range assigned {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	parts := make([]string, 0, len(topics))
	for _, topic := range topics {
		partitions := append([]int32(nil), assigned[topic]...)
		sort.Slice(partitions, func(i, j int) bool { return partitions[i] < partitions[j] })
		parts = append(parts, topic+"["+JoinInt32Slice(partitions)+"]")
	}
	return strings.Join(parts, ";")
}
