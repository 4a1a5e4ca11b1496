// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

import (
	"github.com/gofiber/fiber/v2"
)

type ResponseErr struct {
	ErrCode int    `json:"code"`
	ErrMsg  string `json:"errMsg"`
	Path    string `json:"path,omitempty"`
}

func (e ResponseErr) Error() string {
	return e.ErrMsg
}

// WithRepErr 返回错误码与请求路径, HTTP 状态由业务码推导
func WithRepErr(c *fiber.Ctx, rep *Response) error {
	return c.Status(StatusOf(rep.Code)).JSON(ResponseErr{
		ErrCode: rep.Code,
		ErrMsg:  rep.Msg,
		Path:    c.Path(),
	})
}

// WithRepErrMsg 返回自定义错误信息
func WithRepErrMsg(c *fiber.Ctx, code int, errMsg string) error {
	return c.Status(StatusOf(code)).JSON(ResponseErr{
		ErrCode: code,
		ErrMsg:  errMsg,
		Path:    c.Path(),
	})
}
