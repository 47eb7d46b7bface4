package logutil

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

// Level 日志级别，实现了 pflag.Value 接口，可以直接绑定到 cobra 的 flag 上
type Level int

// 定义日志级别
const (
	DEBUG Level = iota // 0
	INFO               // 1
	WARN               // 2
	ERROR              // 3
)

// 定义日志级别映射字符串
var LOG_LEVELS = map[string]Level{
	"DEBUG": DEBUG,
	"INFO":  INFO,
	"WARN":  WARN,
	"ERROR": ERROR,
}

// ParseLogLevel 大小写不敏感
func ParseLogLevel(s string) (Level, error) {
	if level, ok := LOG_LEVELS[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return level, nil
	}
	return INFO, fmt.Errorf("无效的日志等级: %q", s)
}

func (l *Level) String() string {
	for name, v := range LOG_LEVELS {
		if v == *l {
			return name
		}
	}
	return fmt.Sprintf("Level(%d)", int(*l))
}

func (l *Level) Set(val string) error {
	level, err := ParseLogLevel(val)
	if err != nil {
		return err
	}
	*l = level
	return nil
}

func (l *Level) Type() string {
	return "level"
}

var _ pflag.Value = (*Level)(nil)

var (
	mu           sync.Mutex
	logger       *log.Logger
	logFile      *os.File
	once         sync.Once
	currentLevel = INFO // 默认日志级别
)

// InitLogger 初始化日志，允许指定输出目标（stdout 或 文件），只有第一次调用生效
func InitLogger(output string, level Level) {
	once.Do(func() {
		var err error
		if output == "" || output == "stdout" {
			logFile = os.Stdout
		} else {
			logFile, err = os.OpenFile(
				// 以追加模式打开日志文件，不会覆盖已有内容
				output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				log.Fatal("无法创建日志文件:", err)
			}
		}
		mu.Lock()
		logger = log.New(logFile, "", log.LstdFlags)
		currentLevel = level
		mu.Unlock()
	})
}

// SetOutput 替换日志输出目标，测试中用来捕获日志
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", log.LstdFlags)
}

// 设置日志级别
func SetLogLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
}

func GetLogLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return currentLevel
}

// logMessage 记录日志，**仅输出符合当前级别的日志**
func logMessage(level Level, msg string, args ...any) {
	if logger == nil {
		InitLogger("stdout", INFO) // 默认输出到控制台
	}
	mu.Lock()
	defer mu.Unlock()
	if level < currentLevel { // 值越小打印得越多
		return
	}

	_, file, line, _ := runtime.Caller(2) // 获取真正调用的文件+行号
	relPath := filepath.Base(filepath.Dir(file)) + "/" + filepath.Base(file)

	formattedArgs := make([]any, 0, len(args))
	for _, arg := range args {
		formattedArgs = append(formattedArgs, formatArg(arg))
	}

	logger.Printf("[%s:%d] %s", relPath, line, fmt.Sprintf(msg, formattedArgs...))
}

// 结构体漂亮打印，集合转成 JSON，其它类型原样输出
// 实现了 Stringer 或 error 的类型优先用它们自己的格式
func formatArg(arg any) any {
	switch arg.(type) {
	case fmt.Stringer, error:
		return arg
	}

	// 使用了反射效率低点，但是结构体更美观
	v := reflect.ValueOf(arg)
	if v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		return PrintStruct(v.Interface(), false)
	case reflect.Slice, reflect.Map:
		jsonData, err := json.MarshalIndent(arg, "", "    ")
		if err != nil {
			return fmt.Sprintf("无法格式化: %v", err)
		}
		return string(jsonData)
	default:
		return arg
	}
}

// Info 记录 INFO 日志
func Info(msg string, args ...any) {
	logMessage(INFO, "[INFO] "+msg, args...)
}

// Warn 记录 WARN 日志
func Warn(msg string, args ...any) {
	logMessage(WARN, "[WARN] "+msg, args...)
}

// Error 记录 ERROR 日志
func Error(msg string, args ...any) {
	logMessage(ERROR, "[ERR] "+msg, args...)
}

// Debug 记录 DEBUG 日志
func Debug(msg string, args ...any) {
	// 确保参数被展开在传入进去
	logMessage(DEBUG, "[DBG] "+msg, args...)
}

// 关闭日志文件（如果有的话）
func CloseLogger() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil && logFile != os.Stdout {
		if err := logFile.Close(); err != nil {
			return err
		}
		logFile = nil
	}
	return nil
}

// 递归格式化结构体信息
func formatStruct(s any, indent string) string {
	v := reflect.ValueOf(s)
	// 先检查是否是指针，如果是，则解引用
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	// 处理非结构体类型
	if v.Kind() != reflect.Struct {
		return fmt.Sprintf("%s非结构体类型: %#v\n", indent, v.Kind())
	}
	t := v.Type()

	var builder strings.Builder
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)

		if value.Kind() != reflect.Struct || !value.CanInterface() {
			// 如果不是嵌套结构体，就直接打印内容
			builder.WriteString(fmt.Sprintf("%s%s: %#v\n", indent, field.Name, value))
		} else {
			// 如果是嵌套结构体,先打印标头,再递归处理
			builder.WriteString(fmt.Sprintf("%s%s:\n", indent, field.Name))
			builder.WriteString(formatStruct(value.Interface(), indent+"    "))
		}
	}

	return builder.String()
}

// 打印结构体信息（支持控制是否输出到标准输出）
func PrintStruct(s any, printToStdout bool) string {
	result := formatStruct(s, "")

	if printToStdout {
		fmt.Print(result) // 直接打印到标准输出
	}

	return result // 返回格式化字符串
}
