// Package harness 公平比较不同所有权/存储策略的基准测试脚手架。
//
// 想比较 "按值传递 vs 深拷贝 vs 传指针"、"预分配 vs 自然扩容 vs 内联容量" 这类成本，
// 难点不在被测代码本身，而在于测量方法:
//
//  1. 负载必须由下标确定性地生成（见 fabricate 包），既不能被常量折叠，又要每次运行都一样
//  2. 被测操作的输入输出都要过优化屏障（Observe/Consume），否则编译器会把它删掉
//  3. 一次性的准备成本（分配、构造）要和被测的稳态成本分开:
//     - 形式 A（Recycle）: 循环外预分配 Buffer，循环内清空、填充、交出、归还
//     - 形式 B（Batched）: setup 停表构造新输入，measured 开表消费输入
//
// 矩阵（Expand）把 {策略或容器} × {规模} 展开成带稳定名字的单元，
// 按规模上报吞吐（ns/elem 或 MB/s），交给 testing 包执行。
//
// 执行命令:
//
//	go test -run '^$' -bench . -benchmem ./...
package harness
