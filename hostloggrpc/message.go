// Copyright 2025 Patrick J. Scruggs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hostloggrpc

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/pjscruggs/hostlog"
)

// Field names of the Struct messages exchanged by the service.
const (
	fieldName    = "name"
	fieldLevel   = "level"
	fieldFile    = "file"
	fieldLine    = "line"
	fieldMessage = "message"
	fieldExtra   = "extra"
)

// levelQuery builds the IsEnabledFor request.
func levelQuery(name string, level int) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldName:  structpb.NewStringValue(name),
		fieldLevel: structpb.NewNumberValue(float64(level)),
	}}
}

// parseLevelQuery reads an IsEnabledFor request.
func parseLevelQuery(msg *structpb.Struct) (name string, level int) {
	fields := msg.GetFields()
	return fields[fieldName].GetStringValue(), int(fields[fieldLevel].GetNumberValue())
}

// encodeRecord builds the Handle request for spec.
func encodeRecord(spec *hostlog.RecordSpec) *structpb.Struct {
	fields := map[string]*structpb.Value{
		fieldName:    structpb.NewStringValue(spec.Name),
		fieldLevel:   structpb.NewNumberValue(float64(spec.Level)),
		fieldFile:    structpb.NewStringValue(spec.File),
		fieldLine:    structpb.NewNumberValue(float64(spec.Line)),
		fieldMessage: structpb.NewStringValue(spec.Message),
	}
	if len(spec.Extra) > 0 {
		extra := make(map[string]*structpb.Value, len(spec.Extra))
		for k, v := range spec.Extra {
			extra[k] = encodeValue(v)
		}
		fields[fieldExtra] = structpb.NewStructValue(&structpb.Struct{Fields: extra})
	}
	return &structpb.Struct{Fields: fields}
}

// encodeValue converts v with structpb, falling back to its text form.
func encodeValue(v any) *structpb.Value {
	switch v := v.(type) {
	case error:
		return structpb.NewStringValue(v.Error())
	case fmt.Stringer:
		return structpb.NewStringValue(v.String())
	}
	if value, err := structpb.NewValue(v); err == nil {
		return value
	}
	return structpb.NewStringValue(fmt.Sprint(v))
}

// decodeRecord reads a Handle request.
func decodeRecord(msg *structpb.Struct) hostlog.RecordSpec {
	fields := msg.GetFields()
	spec := hostlog.RecordSpec{
		Name:    fields[fieldName].GetStringValue(),
		Level:   int(fields[fieldLevel].GetNumberValue()),
		File:    fields[fieldFile].GetStringValue(),
		Line:    int(fields[fieldLine].GetNumberValue()),
		Message: fields[fieldMessage].GetStringValue(),
	}
	if extra := fields[fieldExtra].GetStructValue(); len(extra.GetFields()) > 0 {
		spec.Extra = extra.AsMap()
	}
	return spec
}
