package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("Hash 失败: %v", err)
	}
	if digest == "correct-horse-battery-staple" {
		t.Fatal("摘要不应等于明文")
	}

	if !Verify("correct-horse-battery-staple", digest) {
		t.Error("正确密码应通过校验")
	}
	if Verify("wrong-password", digest) {
		t.Error("错误密码不应通过校验")
	}
}

func TestHash_Salted(t *testing.T) {
	d1, _ := Hash("same-password")
	d2, _ := Hash("same-password")
	if d1 == d2 {
		t.Error("相同明文的两次哈希应因盐值不同而不同")
	}
}

func TestVerify_BadDigest(t *testing.T) {
	if Verify("anything", "not-a-bcrypt-digest") {
		t.Error("非法摘要不应通过校验")
	}
}
