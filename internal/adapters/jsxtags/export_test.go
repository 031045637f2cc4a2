package jsxtags

var DecodeVLQ = decodeVLQ
