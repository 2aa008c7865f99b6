package mom

import (
	"bytes"
	"errors"
	"strconv"
)

type SubmitStatus byte

const (
	SubmitStatusInsertSubmitted SubmitStatus = iota
	SubmitStatusCancelSubmitted
	SubmitStatusAccepted
	SubmitStatusInsertRejected
	SubmitStatusCancelRejected

	submitStatusInsertSubmittedStr = "insertSubmitted"
	submitStatusCancelSubmittedStr = "cancelSubmitted"
	submitStatusAcceptedStr        = "accepted"
	submitStatusInsertRejectedStr  = "insertRejected"
	submitStatusCancelRejectedStr  = "cancelRejected"
)

var (
	submitStatusInsertSubmittedBytes = []byte(`"insertSubmitted"`)
	submitStatusCancelSubmittedBytes = []byte(`"cancelSubmitted"`)
	submitStatusAcceptedBytes        = []byte(`"accepted"`)
	submitStatusInsertRejectedBytes  = []byte(`"insertRejected"`)
	submitStatusCancelRejectedBytes  = []byte(`"cancelRejected"`)
)

var submitStatusSet = RegisterCodeSet("submitStatus", map[string]byte{
	submitStatusInsertSubmittedStr: byte(SubmitStatusInsertSubmitted),
	submitStatusCancelSubmittedStr: byte(SubmitStatusCancelSubmitted),
	submitStatusAcceptedStr:        byte(SubmitStatusAccepted),
	submitStatusInsertRejectedStr:  byte(SubmitStatusInsertRejected),
	submitStatusCancelRejectedStr:  byte(SubmitStatusCancelRejected),
})

func (ss SubmitStatus) String() string {
	return submitStatusSet.NameOf(byte(ss))
}

func (ss SubmitStatus) MarshalJSON() ([]byte, error) {
	switch ss {
	case SubmitStatusInsertSubmitted:
		return submitStatusInsertSubmittedBytes, nil
	case SubmitStatusCancelSubmitted:
		return submitStatusCancelSubmittedBytes, nil
	case SubmitStatusAccepted:
		return submitStatusAcceptedBytes, nil
	case SubmitStatusInsertRejected:
		return submitStatusInsertRejectedBytes, nil
	case SubmitStatusCancelRejected:
		return submitStatusCancelRejectedBytes, nil
	}
	return nil, errors.New("invalid submit status json conversion: " + strconv.Itoa(int(ss)))
}

func (ss *SubmitStatus) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, submitStatusInsertSubmittedBytes) {
		*ss = SubmitStatusInsertSubmitted
		return nil
	}
	if bytes.Equal(data, submitStatusCancelSubmittedBytes) {
		*ss = SubmitStatusCancelSubmitted
		return nil
	}
	if bytes.Equal(data, submitStatusAcceptedBytes) {
		*ss = SubmitStatusAccepted
		return nil
	}
	if bytes.Equal(data, submitStatusInsertRejectedBytes) {
		*ss = SubmitStatusInsertRejected
		return nil
	}
	if bytes.Equal(data, submitStatusCancelRejectedBytes) {
		*ss = SubmitStatusCancelRejected
		return nil
	}
	return errors.New("unsupported submit status: " + string(data))
}

func SubmitStatusStrToType(value string) (SubmitStatus, error) {
	code, err := submitStatusSet.CodeOf(value)
	if err != nil {
		return 0, errors.New("unsupported submit status: " + value)
	}
	return SubmitStatus(code), nil
}
