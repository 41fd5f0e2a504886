// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package validation

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type testRequest struct {
	UserID  int64  `json:"user_id" validate:"gt=0"`
	Action  string `json:"action" validate:"required,oneof=view click join dismiss"`
	Exclude string `json:"exclude" validate:"omitempty,idlist"`
	Limit   int    `json:"limit" validate:"gte=0,lte=100"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	req := testRequest{UserID: 1, Action: "join", Exclude: "1, 2,3", Limit: 10}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct() error = %v", err)
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		req       testRequest
		wantField string
		wantTag   string
	}{
		{
			name:      "non-positive user id",
			req:       testRequest{UserID: 0, Action: "view"},
			wantField: "user_id",
			wantTag:   "gt",
		},
		{
			name:      "unknown action",
			req:       testRequest{UserID: 1, Action: "share"},
			wantField: "action",
			wantTag:   "oneof",
		},
		{
			name:      "missing action",
			req:       testRequest{UserID: 1},
			wantField: "action",
			wantTag:   "required",
		},
		{
			name:      "malformed exclude list",
			req:       testRequest{UserID: 1, Action: "view", Exclude: "1,x"},
			wantField: "exclude",
			wantTag:   "idlist",
		},
		{
			name:      "limit above max",
			req:       testRequest{UserID: 1, Action: "view", Limit: 101},
			wantField: "limit",
			wantTag:   "lte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if err == nil {
				t.Fatal("ValidateStruct() expected error")
			}
			var verrs *Errors
			if !errors.As(err, &verrs) {
				t.Fatalf("error type = %T, want *Errors", err)
			}
			fields := verrs.Fields()
			if len(fields) != 1 {
				t.Fatalf("got %d field errors, want 1: %v", len(fields), err)
			}
			if fields[0].Field != tt.wantField || fields[0].Tag != tt.wantTag {
				t.Errorf("got %s/%s, want %s/%s", fields[0].Field, fields[0].Tag, tt.wantField, tt.wantTag)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("message %q should name the field", err.Error())
			}
		})
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	err := ValidateStruct(&testRequest{Limit: -1})
	var verrs *Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("error type = %T, want *Errors", err)
	}
	if len(verrs.Fields()) != 3 {
		t.Errorf("got %d field errors, want 3: %v", len(verrs.Fields()), err)
	}
}

func TestParseIDList(t *testing.T) {
	tests := []struct {
		in      string
		want    []int64
		wantErr bool
	}{
		{"", []int64{}, false},
		{"  ", []int64{}, false},
		{"7", []int64{7}, false},
		{"3, 8,21,", []int64{3, 8, 21}, false},
		{"1,0", nil, true},
		{"1,-4", nil, true},
		{"a,b", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseIDList(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIDList(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseIDList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
