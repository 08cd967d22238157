package discovery

import (
	"fmt"
	"strconv"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeTXT creates TXT records for a bridge advertisement.
func EncodeTXT(info *Info) TXTRecordMap {
	txt := TXTRecordMap{
		TXTKeyDevice:  info.Device,
		TXTKeyVersion: WireVersion,
	}
	if info.Parameters > 0 {
		txt[TXTKeyParameters] = strconv.Itoa(info.Parameters)
	}
	return txt
}

// DecodeTXT parses TXT records of a bridge advertisement.
func DecodeTXT(txt TXTRecordMap) (*Info, string, error) {
	info := &Info{}

	var ok bool
	info.Device, ok = txt[TXTKeyDevice]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyDevice)
	}
	version, ok := txt[TXTKeyVersion]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyVersion)
	}

	if s, ok := txt[TXTKeyParameters]; ok {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return nil, "", fmt.Errorf("%w: %s=%q", ErrInvalidTXTRecord, TXTKeyParameters, s)
		}
		info.Parameters = n
	}
	return info, version, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to a slice of "key=value" strings.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	return result
}

// StringsToTXTRecords parses a slice of "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			// Key without value (boolean flag)
			txt[parts[0]] = ""
		}
	}
	return txt
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidInstanceName)
	}
	if len(name) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}
