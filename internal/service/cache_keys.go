package service

import "fmt"

const statisticsCacheKey = "statistics:general"
const classHeadcountsCacheKey = "statistics:classes"

func studentResultCacheKey(studentID, sessionID string) string {
	return fmt.Sprintf("results:student:%s:session:%s", studentID, sessionID)
}

func studentResultCachePattern(studentID string) string {
	return fmt.Sprintf("results:student:%s:*", studentID)
}
