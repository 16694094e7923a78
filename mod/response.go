package mod

type ResponseValue struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

type ResponseData struct {
	ResponseValue
	Data interface{} `json:"data"`
}

const (
	//成功
	ResponseCodeSuccess = 1001
	//失败
	ResponseCodeFailure = 1002
	//缺少参数
	ResponseCodeMissingParams = 1003
	//非法参数
	ResponseCodeInvalidParams = 1004
	//数据不存在
	ResponseCodeNotFound = 1010
	//上游限流
	ResponseCodeRateLimited = 1011
	//网络不可用
	ResponseCodeNetworkUnavailable = 1012
	//上游服务错误
	ResponseCodeUpstreamError = 1013
)

const MsgSuccess = "success"
