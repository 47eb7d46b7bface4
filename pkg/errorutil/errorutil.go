package errorutil

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	CodeSuccess = 0 // 成功执行

	// 60–69: 用户输入或调用错误
	CodeInvalidUsage = 64 // 命令行用法错误（参数不合法等）
	CodeMissingInput = 65 // 缺失必须输入（如图片文件）
	CodeInvalidData  = 66 // 用户输入格式错误（坐标越界、颜色非法等）

	// 70–79: 程序自身或依赖错误
	CodeIOError     = 72 // 文件读写失败
	CodeInternalErr = 74 // 内部 bug、未捕捉异常

	// 80–89: 配置相关
	CodeConfigError = 80 // 配置文件有误
)

// 各个模块共用的错误分类，模块内部用 %w 包装后向上抛出
var (
	ErrInvalidSize      = errors.New("无效的集合大小")
	ErrIndexOutOfRange  = errors.New("下标越界")
	ErrPointOutOfBounds = errors.New("起始点超出图片范围")
	ErrUnknownMode      = errors.New("未知的填充模式")
	ErrInvalidArgument  = errors.New("参数格式错误")
	ErrMissingInput     = errors.New("输入文件不存在")
	ErrIO               = errors.New("读写失败")
	ErrConfig           = errors.New("配置错误")
)

// omitempty 的作用是空字段不出现
type ExitErrorWithCode struct {
	Code    int    `json:"code"`              // 框架/业务层级错误码
	Message string `json:"message,omitempty"` // 可读消息
	Err     error  `json:"-"`
}

func (e *ExitErrorWithCode) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("Exit with code: %d", e.Code)
}

func (e *ExitErrorWithCode) Unwrap() error {
	return e.Err
}

func NewExitError(code int, err error) error {
	return &ExitErrorWithCode{Code: code, Err: err}
}

// 带错误消息的错误
func NewExitErrorWithMessage(code int, message string, err error) error {
	return &ExitErrorWithCode{Code: code, Message: message, Err: err}
}

// os.Exit(errorutil.ExitCodeFromError(err))
func ExitCodeFromError(err error) int {
	if err == nil {
		return CodeSuccess
	}
	var exitErr *ExitErrorWithCode
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return CodeInternalErr
}

// 判断当前的错误是否是带退出码的错误
func HasExitCode(err error) bool {
	var exitErr *ExitErrorWithCode
	return errors.As(err, &exitErr)
}

// 提取原始错误
func RootError(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

// UsageError 把命令行解析阶段的错误归到参数错误
func UsageError(err error) error {
	if err == nil || errors.Is(err, ErrInvalidArgument) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
}

// Classify 根据错误分类挂上退出码，已经带退出码的错误原样返回
func Classify(err error) error {
	if err == nil || HasExitCode(err) {
		return err
	}

	switch {
	case errors.Is(err, ErrUnknownMode), errors.Is(err, ErrInvalidSize),
		errors.Is(err, ErrInvalidArgument):
		return NewExitErrorWithMessage(CodeInvalidUsage, "参数不合法", err)
	case errors.Is(err, ErrMissingInput):
		return NewExitErrorWithMessage(CodeMissingInput, "缺少输入文件", err)
	case errors.Is(err, ErrPointOutOfBounds), errors.Is(err, ErrIndexOutOfRange):
		return NewExitErrorWithMessage(CodeInvalidData, "输入数据越界", err)
	case errors.Is(err, ErrIO):
		return NewExitErrorWithMessage(CodeIOError, "文件读写失败", err)
	case errors.Is(err, ErrConfig):
		return NewExitErrorWithMessage(CodeConfigError, "配置文件有误", err)
	default:
		return NewExitError(CodeInternalErr, err)
	}
}

func (e *ExitErrorWithCode) JSON() string {
	type jsonErr struct {
		Code    int    `json:"code"`
		Message string `json:"message,omitempty"`
		Err     string `json:"error,omitempty"`
	}

	data := jsonErr{
		Code:    e.Code,
		Message: e.Message,
	}
	if e.Err != nil {
		data.Err = e.Err.Error()
	}
	jsonBytes, _ := json.Marshal(data)
	return string(jsonBytes)
}

func FormatErrorAndCode(err error) (string, int) {
	var exitErr *ExitErrorWithCode
	if errors.As(Classify(err), &exitErr) {
		return exitErr.JSON(), exitErr.Code
	}
	// 构建一个临时 ExitErrorWithCode 对象，并直接调用其 JSON() 方法
	return (&ExitErrorWithCode{
		Code:    CodeInternalErr,
		Message: "未知错误",
		Err:     err,
	}).JSON(), CodeInternalErr
}
