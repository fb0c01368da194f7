package service

import "testing"

func TestParseIntentOrderFullWidthLabels(t *testing.T) {
	intent := ParseIntent("代號：n01\n數量：2\n尺寸：L")
	order, ok := intent.(OrderIntent)
	if !ok {
		t.Fatalf("want OrderIntent got %T", intent)
	}
	if order.Keyword != "N01" {
		t.Fatalf("keyword want N01 got %s", order.Keyword)
	}
	if order.Quantity != 2 {
		t.Fatalf("quantity want 2 got %d", order.Quantity)
	}
	if order.Size != "L" {
		t.Fatalf("size want L got %s", order.Size)
	}
}

func TestParseIntentOrderHalfWidthLabels(t *testing.T) {
	intent := ParseIntent("代號:N02\n數量:3")
	order, ok := intent.(OrderIntent)
	if !ok {
		t.Fatalf("want OrderIntent got %T", intent)
	}
	if order.Keyword != "N02" || order.Quantity != 3 || order.Size != "" {
		t.Fatalf("unexpected parse result: %+v", order)
	}
}

func TestParseIntentOrderDefaultsQuantity(t *testing.T) {
	cases := []string{
		"代號：N03",
		"代號：N03\n數量：abc",
		"代號：N03\n數量：-2",
		"代號：N03\n數量：0",
	}
	for _, text := range cases {
		intent := ParseIntent(text)
		order, ok := intent.(OrderIntent)
		if !ok {
			t.Fatalf("want OrderIntent for %q got %T", text, intent)
		}
		if order.Quantity != 1 {
			t.Fatalf("quantity for %q want 1 got %d", text, order.Quantity)
		}
	}
}

func TestParseIntentUpload(t *testing.T) {
	text := "連線商品-1\n代號：n01\n商品名：adidas唐衣-紅\nsize：S、M L:880,XL\n商品描述：無"
	intent := ParseIntent(text)
	upload, ok := intent.(UploadIntent)
	if !ok {
		t.Fatalf("want UploadIntent got %T", intent)
	}
	if upload.Keyword != "N01" {
		t.Fatalf("keyword want N01 got %s", upload.Keyword)
	}
	if upload.Name != "adidas唐衣-紅" {
		t.Fatalf("name want adidas唐衣-紅 got %s", upload.Name)
	}
	// 描述為「無」視為空
	if upload.Description != "" {
		t.Fatalf("description want empty got %s", upload.Description)
	}
	want := []SizeEntry{
		{Size: "S"},
		{Size: "M"},
		{Size: "L", Price: 880},
		{Size: "XL"},
	}
	if len(upload.Sizes) != len(want) {
		t.Fatalf("sizes want %d got %d: %+v", len(want), len(upload.Sizes), upload.Sizes)
	}
	for i := range want {
		if upload.Sizes[i] != want[i] {
			t.Fatalf("size %d want %+v got %+v", i, want[i], upload.Sizes[i])
		}
	}
}

func TestParseIntentUploadRequiresKeywordAndName(t *testing.T) {
	if intent := ParseIntent("連線商品\n代號：N01"); intent != nil {
		t.Fatalf("upload without name should be unrecognized, got %T", intent)
	}
	if intent := ParseIntent("連線商品\n商品名：外套"); intent != nil {
		t.Fatalf("upload without keyword should be unrecognized, got %T", intent)
	}
}

func TestParseIntentQueryTriggers(t *testing.T) {
	for _, text := range []string{"查詢訂單", "我的訂單", " 查詢訂單 "} {
		if _, ok := ParseIntent(text).(QueryIntent); !ok {
			t.Fatalf("%q should parse as QueryIntent", text)
		}
	}
}

func TestParseIntentUnrecognized(t *testing.T) {
	for _, text := range []string{"", "你好", "數量：2", "想問一下商品"} {
		if intent := ParseIntent(text); intent != nil {
			t.Fatalf("%q should be unrecognized, got %T", text, intent)
		}
	}
}
