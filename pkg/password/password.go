package password

import "golang.org/x/crypto/bcrypt"

// 凭据服务：显式的哈希/校验函数，不挂在数据实体的生命周期钩子上

// Hash 使用 bcrypt 生成密码摘要
func Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify 校验明文密码与摘要是否匹配
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
