package errors

import stdErrors "errors"

// DumpInfo is a log-friendly view of an error chain.
type DumpInfo struct {
	TopMessage string
	Code       string
	Chain      []string
}

// Dump walks the error chain and collects what the request logger records.
func Dump(err error) DumpInfo {
	if err == nil {
		return DumpInfo{}
	}

	info := DumpInfo{TopMessage: err.Error()}
	if typed := As(err); typed != nil {
		info.Code = string(typed.Code())
	}

	for cur := err; cur != nil; cur = stdErrors.Unwrap(cur) {
		info.Chain = append(info.Chain, cur.Error())
	}
	return info
}
