package mailverify

// MessagePack encoding of the report types, written against the msgp
// runtime. Field order and keys match the msg struct tags in report.go;
// keep them in step when a field changes.

import (
	"github.com/tinylib/msgp/msgp"
)

// MarshalMsg implements msgp.Marshaler
func (z *Attempt) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	// map header, size 8
	o = msgp.AppendMapHeader(o, 8)
	o = msgp.AppendString(o, "host")
	o = msgp.AppendString(o, z.Host)
	o = msgp.AppendString(o, "ip")
	o = msgp.AppendString(o, z.IP)
	o = msgp.AppendString(o, "outcome")
	o = msgp.AppendString(o, z.Outcome)
	o = msgp.AppendString(o, "stage")
	o = msgp.AppendString(o, z.Stage)
	o = msgp.AppendString(o, "code")
	o = msgp.AppendInt(o, z.Code)
	o = msgp.AppendString(o, "message")
	o = msgp.AppendString(o, z.Message)
	o = msgp.AppendString(o, "error")
	o = msgp.AppendString(o, z.Error)
	o = msgp.AppendString(o, "duration")
	o = msgp.AppendDuration(o, z.Duration)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *Attempt) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var field []byte
	_ = field
	var zb0001 uint32
	zb0001, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		err = msgp.WrapError(err)
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			err = msgp.WrapError(err)
			return
		}
		switch msgp.UnsafeString(field) {
		case "host":
			z.Host, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Host")
				return
			}
		case "ip":
			z.IP, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "IP")
				return
			}
		case "outcome":
			z.Outcome, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Outcome")
				return
			}
		case "stage":
			z.Stage, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Stage")
				return
			}
		case "code":
			z.Code, bts, err = msgp.ReadIntBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Code")
				return
			}
		case "message":
			z.Message, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Message")
				return
			}
		case "error":
			z.Error, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Error")
				return
			}
		case "duration":
			z.Duration, bts, err = msgp.ReadDurationBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Duration")
				return
			}
		default:
			bts, err = msgp.Skip(bts)
			if err != nil {
				err = msgp.WrapError(err)
				return
			}
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z *Attempt) Msgsize() (s int) {
	s = 1 + 5 + msgp.StringPrefixSize + len(z.Host) + 3 + msgp.StringPrefixSize + len(z.IP) +
		8 + msgp.StringPrefixSize + len(z.Outcome) + 6 + msgp.StringPrefixSize + len(z.Stage) +
		5 + msgp.IntSize + 8 + msgp.StringPrefixSize + len(z.Message) +
		6 + msgp.StringPrefixSize + len(z.Error) + 9 + msgp.DurationSize
	return
}

// MarshalMsg implements msgp.Marshaler
func (z Exchanger) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	// map header, size 2
	o = msgp.AppendMapHeader(o, 2)
	o = msgp.AppendString(o, "host")
	o = msgp.AppendString(o, z.Host)
	o = msgp.AppendString(o, "priority")
	o = msgp.AppendUint16(o, z.Priority)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *Exchanger) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var field []byte
	_ = field
	var zb0001 uint32
	zb0001, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		err = msgp.WrapError(err)
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			err = msgp.WrapError(err)
			return
		}
		switch msgp.UnsafeString(field) {
		case "host":
			z.Host, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Host")
				return
			}
		case "priority":
			z.Priority, bts, err = msgp.ReadUint16Bytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Priority")
				return
			}
		default:
			bts, err = msgp.Skip(bts)
			if err != nil {
				err = msgp.WrapError(err)
				return
			}
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z Exchanger) Msgsize() (s int) {
	s = 1 + 5 + msgp.StringPrefixSize + len(z.Host) + 9 + msgp.Uint16Size
	return
}

// MarshalMsg implements msgp.Marshaler
func (z Reason) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	o = msgp.AppendString(o, string(z))
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *Reason) UnmarshalMsg(bts []byte) (o []byte, err error) {
	{
		var zb0001 string
		zb0001, bts, err = msgp.ReadStringBytes(bts)
		if err != nil {
			err = msgp.WrapError(err)
			return
		}
		(*z) = Reason(zb0001)
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z Reason) Msgsize() (s int) {
	s = msgp.StringPrefixSize + len(string(z))
	return
}

// MarshalMsg implements msgp.Marshaler
func (z *Report) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	// map header, size 16
	o = msgp.AppendMapHeader(o, 16)
	o = msgp.AppendString(o, "id")
	o = msgp.AppendString(o, z.ID)
	o = msgp.AppendString(o, "address")
	o = msgp.AppendString(o, z.Address)
	o = msgp.AppendString(o, "check_mx")
	o = msgp.AppendBool(o, z.CheckMX)
	o = msgp.AppendString(o, "verify")
	o = msgp.AppendBool(o, z.Verify)
	o = msgp.AppendString(o, "syntax")
	o = msgp.AppendBool(o, z.Syntax)
	o = msgp.AppendString(o, "local_part")
	o = msgp.AppendString(o, z.LocalPart)
	o = msgp.AppendString(o, "domain")
	o = msgp.AppendString(o, z.Domain)
	o = msgp.AppendString(o, "org_domain")
	o = msgp.AppendString(o, z.OrgDomain)
	o = msgp.AppendString(o, "exchangers")
	o = msgp.AppendArrayHeader(o, uint32(len(z.Exchangers)))
	for za0001 := range z.Exchangers {
		o, err = z.Exchangers[za0001].MarshalMsg(o)
		if err != nil {
			err = msgp.WrapError(err, "Exchangers", za0001)
			return
		}
	}
	o = msgp.AppendString(o, "authentic")
	o = msgp.AppendBool(o, z.Authentic)
	o = msgp.AppendString(o, "attempts")
	o = msgp.AppendArrayHeader(o, uint32(len(z.Attempts)))
	for za0002 := range z.Attempts {
		o, err = z.Attempts[za0002].MarshalMsg(o)
		if err != nil {
			err = msgp.WrapError(err, "Attempts", za0002)
			return
		}
	}
	o = msgp.AppendString(o, "valid")
	o = msgp.AppendBool(o, z.Valid)
	o = msgp.AppendString(o, "reason")
	o = msgp.AppendString(o, string(z.Reason))
	o = msgp.AppendString(o, "started")
	o = msgp.AppendTime(o, z.Started)
	o = msgp.AppendString(o, "duration")
	o = msgp.AppendDuration(o, z.Duration)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *Report) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var field []byte
	_ = field
	var zb0001 uint32
	zb0001, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		err = msgp.WrapError(err)
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			err = msgp.WrapError(err)
			return
		}
		switch msgp.UnsafeString(field) {
		case "id":
			z.ID, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "ID")
				return
			}
		case "address":
			z.Address, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Address")
				return
			}
		case "check_mx":
			z.CheckMX, bts, err = msgp.ReadBoolBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "CheckMX")
				return
			}
		case "verify":
			z.Verify, bts, err = msgp.ReadBoolBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Verify")
				return
			}
		case "syntax":
			z.Syntax, bts, err = msgp.ReadBoolBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Syntax")
				return
			}
		case "local_part":
			z.LocalPart, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "LocalPart")
				return
			}
		case "domain":
			z.Domain, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Domain")
				return
			}
		case "org_domain":
			z.OrgDomain, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "OrgDomain")
				return
			}
		case "exchangers":
			var zb0002 uint32
			zb0002, bts, err = msgp.ReadArrayHeaderBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Exchangers")
				return
			}
			if cap(z.Exchangers) >= int(zb0002) {
				z.Exchangers = (z.Exchangers)[:zb0002]
			} else {
				z.Exchangers = make([]Exchanger, zb0002)
			}
			for za0001 := range z.Exchangers {
				bts, err = z.Exchangers[za0001].UnmarshalMsg(bts)
				if err != nil {
					err = msgp.WrapError(err, "Exchangers", za0001)
					return
				}
			}
		case "authentic":
			z.Authentic, bts, err = msgp.ReadBoolBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Authentic")
				return
			}
		case "attempts":
			var zb0003 uint32
			zb0003, bts, err = msgp.ReadArrayHeaderBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Attempts")
				return
			}
			if cap(z.Attempts) >= int(zb0003) {
				z.Attempts = (z.Attempts)[:zb0003]
			} else {
				z.Attempts = make([]Attempt, zb0003)
			}
			for za0002 := range z.Attempts {
				bts, err = z.Attempts[za0002].UnmarshalMsg(bts)
				if err != nil {
					err = msgp.WrapError(err, "Attempts", za0002)
					return
				}
			}
		case "valid":
			z.Valid, bts, err = msgp.ReadBoolBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Valid")
				return
			}
		case "reason":
			bts, err = z.Reason.UnmarshalMsg(bts)
			if err != nil {
				err = msgp.WrapError(err, "Reason")
				return
			}
		case "started":
			z.Started, bts, err = msgp.ReadTimeBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Started")
				return
			}
		case "duration":
			z.Duration, bts, err = msgp.ReadDurationBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "Duration")
				return
			}
		default:
			bts, err = msgp.Skip(bts)
			if err != nil {
				err = msgp.WrapError(err)
				return
			}
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z *Report) Msgsize() (s int) {
	s = 3 + 3 + msgp.StringPrefixSize + len(z.ID) + 8 + msgp.StringPrefixSize + len(z.Address) +
		9 + msgp.BoolSize + 7 + msgp.BoolSize + 7 + msgp.BoolSize +
		11 + msgp.StringPrefixSize + len(z.LocalPart) + 7 + msgp.StringPrefixSize + len(z.Domain) +
		11 + msgp.StringPrefixSize + len(z.OrgDomain) + 11 + msgp.ArrayHeaderSize
	for za0001 := range z.Exchangers {
		s += z.Exchangers[za0001].Msgsize()
	}
	s += 10 + msgp.BoolSize + 9 + msgp.ArrayHeaderSize
	for za0002 := range z.Attempts {
		s += z.Attempts[za0002].Msgsize()
	}
	s += 6 + msgp.BoolSize + 7 + z.Reason.Msgsize() + 8 + msgp.TimeSize + 9 + msgp.DurationSize
	return
}
